package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lijeuki/PM-dashboard/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store persists a new project and returns it with the generated id.
	Store(ctx context.Context, project Project) (Project, error)
	// GetAll returns all projects, newest first.
	GetAll(ctx context.Context) ([]Project, error)
	FindByID(ctx context.Context, id string) (Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	// Delete removes the project's labor-day rows first, then the project
	// itself. Ledger and rate rows are left untouched.
	Delete(ctx context.Context, id string) (bool, error)
	// UpdateFinancials overwrites the four denormalized totals in a single
	// statement. Reserved for the reconciliation routine.
	UpdateFinancials(ctx context.Context, id string, totals Financials) (bool, error)
	// UpdateMandaysConsumed overwrites only the consumed labor-day total.
	UpdateMandaysConsumed(ctx context.Context, id string, total float64) (bool, error)
}

// Financials holds the ledger-derived denormalized totals of a project.
type Financials struct {
	Budget           float64
	Spent            float64
	MandaysAllocated float64
	MandaysConsumed  float64
}

type RepositoryImpl struct {
	db database.Admin
}

func NewRepository(db database.Admin) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const createdAtLayout = "2006-01-02 15:04:05"
const dateLayout = "2006-01-02"

func (r *RepositoryImpl) Store(ctx context.Context, project Project) (Project, error) {
	query := `INSERT INTO projects (
                    id,
                    name,
                    description,
                    status,
                    department,
                    budget,
                    spent,
                    burn_rate,
                    mandays_allocated,
                    mandays_consumed,
                    start_date,
                    end_date
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return Project{}, err
	}
	defer stmt.Close()

	project.ID = uuid.NewString()
	_, err = stmt.ExecContext(ctx,
		project.ID,
		project.Name,
		project.Description,
		string(project.Status),
		project.Department,
		project.Budget,
		project.Spent,
		project.BurnRate,
		project.MandaysAllocated,
		project.MandaysConsumed,
		dateParam(project.StartDate),
		dateParam(project.EndDate),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Project{}, err
	}

	return r.FindByID(ctx, project.ID)
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Project, error) {
	query := `SELECT id, name, description, status, department, budget, spent, burn_rate,
					mandays_allocated, mandays_consumed, start_date, end_date, created_at
				FROM projects ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return projects, nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id string) (Project, error) {
	query := `SELECT id, name, description, status, department, budget, spent, burn_rate,
					mandays_allocated, mandays_consumed, start_date, end_date, created_at
				FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		log.Error(err)
		return Project{}, err
	}
	return project, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, project Project) (bool, error) {
	query := `UPDATE projects SET
                  name = ?,
                  description = ?,
                  status = ?,
                  department = ?,
                  budget = ?,
                  start_date = ?,
                  end_date = ?
              WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		project.Name,
		project.Description,
		string(project.Status),
		project.Department,
		project.Budget,
		dateParam(project.StartDate),
		dateParam(project.EndDate),
		project.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}

	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	// Labor-day rows go first. A project without any succeeds trivially.
	if _, err := r.db.ExecContext(ctx, "DELETE FROM mandays WHERE project_id = ?", id); err != nil {
		err := fmt.Errorf("could not delete labor-day records: %w", err)
		log.Error(err)
		return false, err
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) UpdateFinancials(ctx context.Context, id string, totals Financials) (bool, error) {
	query := `UPDATE projects SET
                  budget = ?,
                  spent = ?,
                  mandays_allocated = ?,
                  mandays_consumed = ?
              WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		totals.Budget,
		totals.Spent,
		totals.MandaysAllocated,
		totals.MandaysConsumed,
		id,
	)
	if err != nil {
		err := fmt.Errorf("could not update project financials: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) UpdateMandaysConsumed(ctx context.Context, id string, total float64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE projects SET mandays_consumed = ? WHERE id = ?", total, id)
	if err != nil {
		err := fmt.Errorf("could not update consumed labor days: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func dateParam(date time.Time) interface{} {
	if date.IsZero() {
		return nil
	}
	return date.Format(dateLayout)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (Project, error) {
	var project Project
	var status string
	var startDate, endDate sql.NullString
	var createdAt string
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&status,
		&project.Department,
		&project.Budget,
		&project.Spent,
		&project.BurnRate,
		&project.MandaysAllocated,
		&project.MandaysConsumed,
		&startDate,
		&endDate,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, err
		}
		return Project{}, fmt.Errorf("could not scan project: %w", err)
	}
	project.Status = Status(status)
	if startDate.Valid {
		parsed, err := time.Parse(dateLayout, startDate.String)
		if err != nil {
			return Project{}, fmt.Errorf("could not parse start date: %w", err)
		}
		project.StartDate = parsed
	}
	if endDate.Valid {
		parsed, err := time.Parse(dateLayout, endDate.String)
		if err != nil {
			return Project{}, fmt.Errorf("could not parse end date: %w", err)
		}
		project.EndDate = parsed
	}
	if parsed, err := time.Parse(createdAtLayout, createdAt); err == nil {
		project.CreatedAt = parsed
	}
	return project, nil
}
