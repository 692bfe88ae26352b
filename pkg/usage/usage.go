// Package usage builds resource-usage views over labor-day records: the
// per-role monthly table, monthly totals and per-role totals used by the
// dashboard charts.
package usage

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid usage query")

// ScopeAll selects records across every project.
const ScopeAll = "all"

// monthsPerYear is the width of every monthly breakdown.
const monthsPerYear = 12

// TotalRowLabel names the synthetic summary row of the resource table.
const TotalRowLabel = "TOTAL"

// ResourceRow is one role's usage across a year. Monthly is indexed by
// month, January first, with zeros for months without records.
type ResourceRow struct {
	Role      string
	Monthly   [monthsPerYear]float64
	TotalDays float64
	Rate      float64
	TotalCost float64
}

// ResourceTable is the per-role usage table plus its summary row. The
// summary row carries no rate because rates differ per role.
type ResourceTable struct {
	Rows  []ResourceRow
	Total ResourceRow
}

// MonthTotal is the labor-day sum of one month.
type MonthTotal struct {
	Month string
	Label string
	Days  float64
}

// RoleTotal is the labor-day sum of one role.
type RoleTotal struct {
	Role string
	Days float64
}

var monthLabels = [monthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthNumbers returns the canonical month filter vocabulary, "01".."12".
func MonthNumbers() []string {
	months := make([]string, 0, monthsPerYear)
	for i := 1; i <= monthsPerYear; i++ {
		months = append(months, fmt.Sprintf("%02d", i))
	}
	return months
}
