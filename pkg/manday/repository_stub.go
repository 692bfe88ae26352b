package manday

import (
	"context"
	"time"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	records  []Record
	nextID   int64
	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextID: 1}
}

func (s *RepositoryStub) List(_ context.Context, filter Filter) ([]Record, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	result := make([]Record, 0)
	for _, record := range s.records {
		if filter.ProjectID != "" && filter.ProjectID != ScopeAll && record.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Month != "" && record.Month != filter.Month {
			continue
		}
		if filter.Year != "" && record.Year != filter.Year {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (s *RepositoryStub) Upsert(_ context.Context, record Record) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	for i, existing := range s.records {
		if existing.ProjectID == record.ProjectID && existing.Role == record.Role &&
			existing.Month == record.Month && existing.Year == record.Year {
			s.records[i].TotalHours = record.TotalHours
			s.records[i].Mandays = record.Mandays
			return nil
		}
	}
	record.ID = s.nextID
	record.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.nextID) * time.Minute)
	s.nextID++
	s.records = append(s.records, record)
	return nil
}

func (s *RepositoryStub) SumForProject(_ context.Context, projectID string) (float64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	var total float64
	for _, record := range s.records {
		if record.ProjectID == projectID {
			total += record.Mandays
		}
	}
	return total, nil
}

func (s *RepositoryStub) Cleanup() {
	s.records = nil
	s.nextID = 1
	s.FailWith = nil
}
