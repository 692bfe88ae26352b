package ledger

import (
	"context"
	"time"
)

type RepositoryStub struct {
	nextId   int64
	entries  []Entry
	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) Store(ctx context.Context, entry Entry) (Entry, error) {
	if s.FailWith != nil {
		return Entry{}, s.FailWith
	}
	s.nextId++
	entry.ID = s.nextId
	entry.CreatedAt = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(s.nextId) * time.Minute)
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *RepositoryStub) GetAllForProject(ctx context.Context, projectID string) ([]Entry, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var entries []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].ProjectID == projectID {
			entries = append(entries, s.entries[i])
		}
	}
	return entries, nil
}

func (s *RepositoryStub) Cleanup() {
	s.entries = nil
	s.nextId = 0
	s.FailWith = nil
}
