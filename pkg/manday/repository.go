package manday

import (
	"context"
	"fmt"
	"time"

	"github.com/lijeuki/PM-dashboard/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// List returns records matching the filter, in insertion order.
	List(ctx context.Context, filter Filter) ([]Record, error)
	// Upsert inserts the record or, when a row with the same
	// (project, role, month, year) exists, overwrites its hours and mandays.
	Upsert(ctx context.Context, record Record) error
	// SumForProject returns the total labor days recorded for a project
	// across all months and years.
	SumForProject(ctx context.Context, projectID string) (float64, error)
}

type RepositoryImpl struct {
	db database.Admin
}

func NewRepository(db database.Admin) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const createdAtLayout = "2006-01-02 15:04:05"

func (r *RepositoryImpl) List(ctx context.Context, filter Filter) ([]Record, error) {
	query := `SELECT id, project_id, role, month, year, total_hours, mandays, created_at
				FROM mandays WHERE 1=1`
	var args []interface{}
	if filter.ProjectID != "" && filter.ProjectID != ScopeAll {
		query += " AND project_id = ?"
		args = append(args, filter.ProjectID)
	}
	if filter.Month != "" {
		query += " AND month = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != "" {
		query += " AND year = ?"
		args = append(args, filter.Year)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query labor-day records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var createdAt string
		if err := rows.Scan(
			&record.ID,
			&record.ProjectID,
			&record.Role,
			&record.Month,
			&record.Year,
			&record.TotalHours,
			&record.Mandays,
			&createdAt,
		); err != nil {
			err := fmt.Errorf("could not scan labor-day record: %w", err)
			log.Error(err)
			return nil, err
		}
		if parsed, err := time.Parse(createdAtLayout, createdAt); err == nil {
			record.CreatedAt = parsed
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return records, nil
}

func (r *RepositoryImpl) Upsert(ctx context.Context, record Record) error {
	query := `INSERT INTO mandays (project_id, role, month, year, total_hours, mandays)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (project_id, role, month, year)
				DO UPDATE SET total_hours = excluded.total_hours, mandays = excluded.mandays`
	_, err := r.db.ExecContext(ctx, query,
		record.ProjectID,
		record.Role,
		record.Month,
		record.Year,
		record.TotalHours,
		record.Mandays,
	)
	if err != nil {
		err := fmt.Errorf("could not upsert labor-day record: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) SumForProject(ctx context.Context, projectID string) (float64, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(mandays), 0) FROM mandays WHERE project_id = ?", projectID)
	var total float64
	if err := row.Scan(&total); err != nil {
		err := fmt.Errorf("could not sum labor days: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}
