package usage

import "context"

// RepositoryStub is an in-memory Repository for tests. Entries are keyed
// by (projectID, year); "all" years are merged across projects.
type RepositoryStub struct {
	entries  map[string][]Entry
	rates    map[string]map[string]float64
	years    []string
	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		entries: make(map[string][]Entry),
		rates:   make(map[string]map[string]float64),
	}
}

func (s *RepositoryStub) AddEntry(projectID, year string, entry Entry) {
	s.entries[projectID+"/"+year] = append(s.entries[projectID+"/"+year], entry)
}

func (s *RepositoryStub) SetRate(projectID, role string, rate float64) {
	if s.rates[projectID] == nil {
		s.rates[projectID] = make(map[string]float64)
	}
	if _, ok := s.rates[projectID][role]; !ok {
		s.rates[projectID][role] = rate
	}
}

func (s *RepositoryStub) SetYears(years ...string) {
	s.years = years
}

func (s *RepositoryStub) Entries(_ context.Context, projectID, year string) ([]Entry, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	if projectID != ScopeAll {
		return s.entries[projectID+"/"+year], nil
	}
	var merged []Entry
	for key, entries := range s.entries {
		if len(key) >= len(year) && key[len(key)-len(year):] == year {
			merged = append(merged, entries...)
		}
	}
	return merged, nil
}

func (s *RepositoryStub) RateByRole(_ context.Context, projectID string) (map[string]float64, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	rates := make(map[string]float64)
	if projectID != ScopeAll {
		for role, rate := range s.rates[projectID] {
			rates[role] = rate
		}
		return rates, nil
	}
	for _, byRole := range s.rates {
		for role, rate := range byRole {
			if _, ok := rates[role]; !ok {
				rates[role] = rate
			}
		}
	}
	return rates, nil
}

func (s *RepositoryStub) Years(_ context.Context) ([]string, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	return s.years, nil
}

func (s *RepositoryStub) Cleanup() {
	s.entries = make(map[string][]Entry)
	s.rates = make(map[string]map[string]float64)
	s.years = nil
	s.FailWith = nil
}
