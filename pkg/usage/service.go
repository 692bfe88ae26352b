package usage

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/lijeuki/PM-dashboard/pkg/manday"
)

type Service interface {
	ResourceTable(ctx context.Context, projectID, year string) (*ResourceTable, error)
	MonthlyTotals(ctx context.Context, projectID, year string) ([]MonthTotal, error)
	RoleTotals(ctx context.Context, projectID, month, year string) ([]RoleTotal, error)
	Years(ctx context.Context) ([]string, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo}
}

// ResourceTable builds the per-role usage table for a project (or
// ScopeAll) and year. Roles appear in order of first record; each role
// row carries twelve monthly sums, the year total, the role's rate and
// the resulting cost. A synthetic summary row closes the table.
func (s *ServiceImpl) ResourceTable(ctx context.Context, projectID, year string) (*ResourceTable, error) {
	if err := validateScope(projectID, year); err != nil {
		return nil, err
	}

	entries, err := s.repo.Entries(ctx, projectID, year)
	if err != nil {
		return nil, err
	}
	rates, err := s.repo.RateByRole(ctx, projectID)
	if err != nil {
		return nil, err
	}

	byRole := make(map[string]*ResourceRow)
	var order []string
	for _, entry := range entries {
		row, ok := byRole[entry.Role]
		if !ok {
			row = &ResourceRow{Role: entry.Role, Rate: rates[entry.Role]}
			byRole[entry.Role] = row
			order = append(order, entry.Role)
		}
		if idx, ok := monthIndex(entry.Month); ok {
			row.Monthly[idx] += entry.Mandays
			row.TotalDays += entry.Mandays
		}
	}

	table := &ResourceTable{Rows: make([]ResourceRow, 0, len(order))}
	table.Total.Role = TotalRowLabel
	for _, role := range order {
		row := byRole[role]
		row.TotalCost = row.TotalDays * row.Rate
		table.Rows = append(table.Rows, *row)

		for i := range row.Monthly {
			table.Total.Monthly[i] += row.Monthly[i]
		}
		table.Total.TotalDays += row.TotalDays
		table.Total.TotalCost += row.TotalCost
	}
	return table, nil
}

// MonthlyTotals returns twelve labeled labor-day sums, zero-filled for
// months without records.
func (s *ServiceImpl) MonthlyTotals(ctx context.Context, projectID, year string) ([]MonthTotal, error) {
	if err := validateScope(projectID, year); err != nil {
		return nil, err
	}

	entries, err := s.repo.Entries(ctx, projectID, year)
	if err != nil {
		return nil, err
	}

	totals := make([]MonthTotal, monthsPerYear)
	for i := range totals {
		totals[i] = MonthTotal{Month: fmt.Sprintf("%02d", i+1), Label: monthLabels[i]}
	}
	for _, entry := range entries {
		if idx, ok := monthIndex(entry.Month); ok {
			totals[idx].Days += entry.Mandays
		}
	}
	return totals, nil
}

// RoleTotals returns per-role labor-day sums for one month, largest
// first. Roles tied on days keep their order of first record.
func (s *ServiceImpl) RoleTotals(ctx context.Context, projectID, month, year string) ([]RoleTotal, error) {
	if err := validateScope(projectID, year); err != nil {
		return nil, err
	}
	if !manday.IsValidMonth(month) {
		return nil, fmt.Errorf("%w: month must be 01..12", ErrInvalid)
	}

	entries, err := s.repo.Entries(ctx, projectID, year)
	if err != nil {
		return nil, err
	}

	byRole := make(map[string]float64)
	var order []string
	for _, entry := range entries {
		if entry.Month != month {
			continue
		}
		if _, ok := byRole[entry.Role]; !ok {
			order = append(order, entry.Role)
		}
		byRole[entry.Role] += entry.Mandays
	}

	totals := make([]RoleTotal, 0, len(order))
	for _, role := range order {
		totals = append(totals, RoleTotal{Role: role, Days: byRole[role]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Days > totals[j].Days
	})
	return totals, nil
}

func (s *ServiceImpl) Years(ctx context.Context) ([]string, error) {
	return s.repo.Years(ctx)
}

func validateScope(projectID, year string) error {
	if projectID == "" {
		return fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	if !manday.IsValidYear(year) {
		return fmt.Errorf("%w: year must be a four digit number", ErrInvalid)
	}
	return nil
}

func monthIndex(month string) (int, bool) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > monthsPerYear {
		return 0, false
	}
	return m - 1, true
}
