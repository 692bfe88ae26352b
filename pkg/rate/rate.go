package rate

import "errors"

var (
	ErrNotFound = errors.New("role rate not found")
	ErrInvalid  = errors.New("invalid role rate")
)

// RoleRate prices one labor day of a role on a project. One rate per
// (project, role) is a convention, not a constraint: when duplicates exist
// the newest row wins during aggregation.
type RoleRate struct {
	ID            int64
	ProjectID     string
	Role          string
	CostPerManday float64
}
