package usage

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lijeuki/PM-dashboard/internal/database"
)

// Entry is the slice of a labor-day record the usage builder needs.
type Entry struct {
	Role    string
	Month   string
	Mandays float64
}

type Repository interface {
	// Entries returns the labor-day slices for a project (or ScopeAll)
	// and year, in insertion order.
	Entries(ctx context.Context, projectID, year string) ([]Entry, error)
	// RateByRole returns role -> cost per labor day for the scope. When a
	// role has several rates the first configured one wins.
	RateByRole(ctx context.Context, projectID string) (map[string]float64, error)
	// Years returns the distinct years with records, newest first.
	Years(ctx context.Context) ([]string, error)
}

type RepositoryImpl struct {
	db database.ReadOnly
}

func NewRepository(db database.ReadOnly) *RepositoryImpl {
	return &RepositoryImpl{db}
}

func (r *RepositoryImpl) Entries(ctx context.Context, projectID, year string) ([]Entry, error) {
	query := "SELECT role, month, mandays FROM mandays WHERE year = ?"
	args := []interface{}{year}
	if projectID != ScopeAll {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = fmt.Errorf("error reading labor-day records: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Role, &entry.Month, &entry.Mandays); err != nil {
			err = fmt.Errorf("error scanning labor-day record: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *RepositoryImpl) RateByRole(ctx context.Context, projectID string) (map[string]float64, error) {
	query := "SELECT role, cost_per_manday FROM project_role_rates"
	var args []interface{}
	if projectID != ScopeAll {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = fmt.Errorf("error reading role rates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var role string
		var cost float64
		if err := rows.Scan(&role, &cost); err != nil {
			err = fmt.Errorf("error scanning role rate: %w", err)
			log.Error(err)
			return nil, err
		}
		if _, ok := rates[role]; !ok {
			rates[role] = cost
		}
	}
	return rates, rows.Err()
}

func (r *RepositoryImpl) Years(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT year FROM mandays ORDER BY year DESC")
	if err != nil {
		err = fmt.Errorf("error reading record years: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			err = fmt.Errorf("error scanning record year: %w", err)
			log.Error(err)
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}
