// Package reconcile rebuilds a project's denormalized financial totals
// from its ledger history and labor-day records. Both syncs are
// idempotent: running them twice leaves the same totals.
package reconcile

// Result reports the outcome of reconciling one project.
type Result struct {
	ProjectID string
	Err       error
}
