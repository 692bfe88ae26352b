// Package health exposes store liveness and per-table diagnostics.
package health

// Status is the overall store health report.
type Status struct {
	Healthy  bool
	Projects int
	Error    string
}

// TableStatus is the access probe result for one table.
type TableStatus struct {
	Table      string
	Accessible bool
	HasData    bool
	Error      string
}
