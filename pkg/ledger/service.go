package ledger

import (
	"context"
	"fmt"
)

type Service interface {
	Record(ctx context.Context, entry Entry) (Entry, error)
	GetAllForProject(ctx context.Context, projectID string) ([]Entry, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ProjectID == "" {
		return Entry{}, fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	if !entry.Type.IsValid() {
		return Entry{}, fmt.Errorf("%w: unknown type %q", ErrInvalid, entry.Type)
	}
	if !entry.Category.IsValid() {
		return Entry{}, fmt.Errorf("%w: unknown category %q", ErrInvalid, entry.Category)
	}
	if entry.Amount <= 0 {
		return Entry{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	return s.repo.Store(ctx, entry)
}

func (s *ServiceImpl) GetAllForProject(ctx context.Context, projectID string) ([]Entry, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	return s.repo.GetAllForProject(ctx, projectID)
}
