package project

import (
	"context"
	"fmt"
	"time"
)

// RepositoryStub is an in-memory Repository used by service and handler
// tests across packages.
type RepositoryStub struct {
	nextId   int
	order    []string
	data     map[string]Project
	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: map[string]Project{}}
}

func (s *RepositoryStub) Store(ctx context.Context, project Project) (Project, error) {
	if s.FailWith != nil {
		return Project{}, s.FailWith
	}
	s.nextId++
	project.ID = fmt.Sprintf("proj-%03d", s.nextId)
	project.CreatedAt = time.Date(2024, time.January, s.nextId, 0, 0, 0, 0, time.UTC)
	s.data[project.ID] = project
	s.order = append(s.order, project.ID)
	return project, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Project, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	projects := make([]Project, 0, len(s.data))
	for i := len(s.order) - 1; i >= 0; i-- {
		projects = append(projects, s.data[s.order[i]])
	}
	return projects, nil
}

func (s *RepositoryStub) FindByID(ctx context.Context, id string) (Project, error) {
	if s.FailWith != nil {
		return Project{}, s.FailWith
	}
	project, ok := s.data[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return project, nil
}

func (s *RepositoryStub) Update(ctx context.Context, project Project) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	existing, ok := s.data[project.ID]
	if !ok {
		return false, nil
	}
	project.CreatedAt = existing.CreatedAt
	project.Spent = existing.Spent
	project.MandaysAllocated = existing.MandaysAllocated
	project.MandaysConsumed = existing.MandaysConsumed
	s.data[project.ID] = project
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id string) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	for i, storedId := range s.order {
		if storedId == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *RepositoryStub) UpdateFinancials(ctx context.Context, id string, totals Financials) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	project, ok := s.data[id]
	if !ok {
		return false, nil
	}
	project.Budget = totals.Budget
	project.Spent = totals.Spent
	project.MandaysAllocated = totals.MandaysAllocated
	project.MandaysConsumed = totals.MandaysConsumed
	s.data[id] = project
	return true, nil
}

func (s *RepositoryStub) UpdateMandaysConsumed(ctx context.Context, id string, total float64) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	project, ok := s.data[id]
	if !ok {
		return false, nil
	}
	project.MandaysConsumed = total
	s.data[id] = project
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.data = map[string]Project{}
	s.order = nil
	s.FailWith = nil
}
