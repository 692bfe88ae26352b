// Package spending aggregates per-project costs into spending summaries.
//
// The arithmetic lives in one place (Service); where the numbers come
// from is abstracted behind Source, so the precomputed view and the
// manual three-table read can never drift apart.
package spending

// Summary is the spending picture of one project.
type Summary struct {
	ProjectID   string
	ProjectName string
	TotalSpent  float64
	BurnRate    float64
}

// Components are the raw cost inputs of one project before rounding.
type Components struct {
	MandayCosts float64
	LedgerCosts float64
}
