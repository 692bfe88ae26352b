package spending

import (
	"context"
	"fmt"

	"github.com/lijeuki/PM-dashboard/pkg/project"
)

// SourceStub is an in-memory Source for tests. ComponentErrors injects a
// failure for a single project without failing the rest of the batch.
type SourceStub struct {
	Rows            []ProjectRow
	ComponentsByID  map[string]Components
	ComponentErrors map[string]error
	FailWith        error
}

func NewSourceStub() *SourceStub {
	return &SourceStub{
		ComponentsByID:  make(map[string]Components),
		ComponentErrors: make(map[string]error),
	}
}

func (s *SourceStub) Projects(_ context.Context) ([]ProjectRow, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return s.Rows, nil
}

func (s *SourceStub) Project(_ context.Context, projectID string) (*ProjectRow, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for _, row := range s.Rows {
		if row.ID == projectID {
			return &row, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", projectID, project.ErrNotFound)
}

func (s *SourceStub) Components(_ context.Context, projectID string) (*Components, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if err, ok := s.ComponentErrors[projectID]; ok {
		return nil, err
	}
	components := s.ComponentsByID[projectID]
	return &components, nil
}

func (s *SourceStub) Cleanup() {
	s.Rows = nil
	s.ComponentsByID = make(map[string]Components)
	s.ComponentErrors = make(map[string]error)
	s.FailWith = nil
}
