package manday

import (
	"context"
	"io"
)

// TransformerStub returns canned rows for tests.
type TransformerStub struct {
	Rows     []Row
	FailWith error
}

func (s *TransformerStub) Transform(_ context.Context, _ io.Reader, _, _, _ string) ([]Row, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return s.Rows, nil
}

func (s *TransformerStub) Cleanup() {
	s.Rows = nil
	s.FailWith = nil
}
