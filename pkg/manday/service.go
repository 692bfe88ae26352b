package manday

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context, filter Filter) ([]Record, error)
	// Import sends the file through the external transformer and upserts
	// the resulting rows. It returns how many rows were applied.
	Import(ctx context.Context, projectID, year string, file io.Reader, filename string) (int, error)
}

type ServiceImpl struct {
	repo        Repository
	transformer Transformer
}

func NewService(repo Repository, transformer Transformer) *ServiceImpl {
	return &ServiceImpl{repo: repo, transformer: transformer}
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Record, error) {
	if filter.ProjectID == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	return s.repo.List(ctx, filter)
}

func (s *ServiceImpl) Import(ctx context.Context, projectID, year string, file io.Reader, filename string) (int, error) {
	if projectID == "" {
		return 0, fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	if !IsValidYear(year) {
		return 0, fmt.Errorf("%w: year must be four digits", ErrInvalid)
	}

	rows, err := s.transformer.Transform(ctx, file, filename, projectID, year)
	if err != nil {
		return 0, fmt.Errorf("transformation failed: %w", err)
	}

	applied := 0
	for _, row := range rows {
		// The transformer's output is untrusted: drop incomplete rows.
		if row.Role == "" || row.TotalDuration == 0 || !IsValidMonth(row.Month) {
			log.Warnf("skipping incomplete row from transformer: role=%q month=%q", row.Role, row.Month)
			continue
		}
		record := Record{
			ProjectID:  projectID,
			Role:       row.Role,
			Month:      row.Month,
			Year:       year,
			TotalHours: row.TotalDuration,
			Mandays:    row.TotalDuration / HoursPerManday,
		}
		if err := s.repo.Upsert(ctx, record); err != nil {
			log.Errorf("failed to store labor-day record for role %s: %v", record.Role, err)
			continue
		}
		applied++
	}

	if applied == 0 {
		return 0, ErrNoValidRows
	}
	return applied, nil
}
