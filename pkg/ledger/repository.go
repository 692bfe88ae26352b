package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/lijeuki/PM-dashboard/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store appends a new entry and returns it with id and timestamp set.
	// There is no update or delete: the ledger is append-only.
	Store(ctx context.Context, entry Entry) (Entry, error)
	// GetAllForProject returns the project's entries, newest first.
	GetAllForProject(ctx context.Context, projectID string) ([]Entry, error)
}

type RepositoryImpl struct {
	db database.Admin
}

func NewRepository(db database.Admin) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const createdAtLayout = "2006-01-02 15:04:05"

func (r *RepositoryImpl) Store(ctx context.Context, entry Entry) (Entry, error) {
	query := `INSERT INTO project_ledger (project_id, type, category, amount, notes)
				VALUES (?, ?, ?, ?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		entry.ProjectID,
		string(entry.Type),
		string(entry.Category),
		entry.Amount,
		entry.Notes,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Entry{}, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	entry.ID = lastInsertID

	row := r.db.QueryRowContext(ctx, "SELECT created_at FROM project_ledger WHERE id = ?", entry.ID)
	var createdAt string
	if err := row.Scan(&createdAt); err != nil {
		err := fmt.Errorf("could not read back created entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	if parsed, err := time.Parse(createdAtLayout, createdAt); err == nil {
		entry.CreatedAt = parsed
	}

	return entry, nil
}

func (r *RepositoryImpl) GetAllForProject(ctx context.Context, projectID string) ([]Entry, error) {
	query := `SELECT id, project_id, type, category, amount, notes, created_at
				FROM project_ledger WHERE project_id = ?
				ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		err := fmt.Errorf("could not query ledger entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var entryType, category, createdAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entryType,
			&category,
			&entry.Amount,
			&entry.Notes,
			&createdAt,
		); err != nil {
			err := fmt.Errorf("could not scan ledger entry: %w", err)
			log.Error(err)
			return nil, err
		}
		entry.Type = EntryType(entryType)
		entry.Category = Category(category)
		if parsed, err := time.Parse(createdAtLayout, createdAt); err == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return entries, nil
}
