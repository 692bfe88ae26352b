package spending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lijeuki/PM-dashboard/internal/database"
	"github.com/lijeuki/PM-dashboard/pkg/project"
)

// ProjectRow is the slice of a project the aggregator needs.
type ProjectRow struct {
	ID     string
	Name   string
	Budget float64
}

// Source supplies projects and their raw cost components. Implementations
// must return projects in creation order.
type Source interface {
	Projects(ctx context.Context) ([]ProjectRow, error)
	Project(ctx context.Context, projectID string) (*ProjectRow, error)
	Components(ctx context.Context, projectID string) (*Components, error)
}

// ViewSource reads cost components from the project_spending view.
type ViewSource struct {
	db database.ReadOnly
}

func NewViewSource(db database.ReadOnly) *ViewSource {
	return &ViewSource{db}
}

func (s *ViewSource) Projects(ctx context.Context) ([]ProjectRow, error) {
	return queryProjects(ctx, s.db.DB)
}

func (s *ViewSource) Project(ctx context.Context, projectID string) (*ProjectRow, error) {
	return queryProject(ctx, s.db.DB, projectID)
}

func (s *ViewSource) Components(ctx context.Context, projectID string) (*Components, error) {
	stmt, err := s.db.PrepareContext(ctx, `
		SELECT manday_costs, ledger_costs
		FROM project_spending
		WHERE project_id = ?`)
	if err != nil {
		err = fmt.Errorf("error preparing spending view query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer stmt.Close()

	var components Components
	err = stmt.QueryRowContext(ctx, projectID).Scan(&components.MandayCosts, &components.LedgerCosts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", projectID, project.ErrNotFound)
	}
	if err != nil {
		err = fmt.Errorf("error reading spending view for project %s: %w", projectID, err)
		log.Error(err)
		return nil, err
	}
	return &components, nil
}

// ManualSource recomputes cost components straight from the ledger, rate
// and labor-day tables. It exists as the fallback when the view is
// unavailable and must agree with the view on every input.
type ManualSource struct {
	db database.ReadOnly
}

func NewManualSource(db database.ReadOnly) *ManualSource {
	return &ManualSource{db}
}

func (s *ManualSource) Projects(ctx context.Context) ([]ProjectRow, error) {
	return queryProjects(ctx, s.db.DB)
}

func (s *ManualSource) Project(ctx context.Context, projectID string) (*ProjectRow, error) {
	return queryProject(ctx, s.db.DB, projectID)
}

func (s *ManualSource) Components(ctx context.Context, projectID string) (*Components, error) {
	rates, err := s.rateMap(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var components Components

	rows, err := s.db.QueryContext(ctx,
		"SELECT role, mandays FROM mandays WHERE project_id = ?", projectID)
	if err != nil {
		err = fmt.Errorf("error reading labor days for project %s: %w", projectID, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var mandays float64
		if err := rows.Scan(&role, &mandays); err != nil {
			err = fmt.Errorf("error scanning labor-day row: %w", err)
			log.Error(err)
			return nil, err
		}
		components.MandayCosts += mandays * rates[role]
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM project_ledger
		WHERE project_id = ? AND type = 'debit' AND category = 'budget'`,
		projectID).Scan(&components.LedgerCosts)
	if err != nil {
		err = fmt.Errorf("error reading ledger costs for project %s: %w", projectID, err)
		log.Error(err)
		return nil, err
	}
	return &components, nil
}

// rateMap returns role -> cost per labor day. Rows are read oldest first
// so the newest rate for a role overwrites earlier ones, matching the
// view's newest-wins lookup.
func (s *ManualSource) rateMap(ctx context.Context, projectID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, cost_per_manday FROM project_role_rates WHERE project_id = ? ORDER BY id",
		projectID)
	if err != nil {
		err = fmt.Errorf("error reading role rates for project %s: %w", projectID, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var role string
		var cost float64
		if err := rows.Scan(&role, &cost); err != nil {
			err = fmt.Errorf("error scanning role rate row: %w", err)
			log.Error(err)
			return nil, err
		}
		rates[role] = cost
	}
	return rates, rows.Err()
}

// SourceWithFallback serves from the primary source and falls back to the
// secondary per project when the primary fails. Not-found is not a source
// failure and is returned as is.
type SourceWithFallback struct {
	primary  Source
	fallback Source
}

func NewSourceWithFallback(primary, fallback Source) *SourceWithFallback {
	return &SourceWithFallback{primary: primary, fallback: fallback}
}

func (s *SourceWithFallback) Projects(ctx context.Context) ([]ProjectRow, error) {
	projects, err := s.primary.Projects(ctx)
	if err != nil {
		log.Warnf("primary spending source failed listing projects, falling back: %v", err)
		return s.fallback.Projects(ctx)
	}
	return projects, nil
}

func (s *SourceWithFallback) Project(ctx context.Context, projectID string) (*ProjectRow, error) {
	row, err := s.primary.Project(ctx, projectID)
	if err != nil && !errors.Is(err, project.ErrNotFound) {
		log.Warnf("primary spending source failed for project %s, falling back: %v", projectID, err)
		return s.fallback.Project(ctx, projectID)
	}
	return row, err
}

func (s *SourceWithFallback) Components(ctx context.Context, projectID string) (*Components, error) {
	components, err := s.primary.Components(ctx, projectID)
	if err != nil && !errors.Is(err, project.ErrNotFound) {
		log.Warnf("primary spending source failed for project %s, falling back: %v", projectID, err)
		return s.fallback.Components(ctx, projectID)
	}
	return components, err
}

func queryProjects(ctx context.Context, db *sql.DB) ([]ProjectRow, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, budget FROM projects ORDER BY created_at, rowid")
	if err != nil {
		err = fmt.Errorf("error listing projects for aggregation: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectRow
	for rows.Next() {
		var row ProjectRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Budget); err != nil {
			err = fmt.Errorf("error scanning project row: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, row)
	}
	return projects, rows.Err()
}

func queryProject(ctx context.Context, db *sql.DB, projectID string) (*ProjectRow, error) {
	var row ProjectRow
	err := db.QueryRowContext(ctx,
		"SELECT id, name, budget FROM projects WHERE id = ?", projectID).
		Scan(&row.ID, &row.Name, &row.Budget)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", projectID, project.ErrNotFound)
	}
	if err != nil {
		err = fmt.Errorf("error reading project %s: %w", projectID, err)
		log.Error(err)
		return nil, err
	}
	return &row, nil
}
