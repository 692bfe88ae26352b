package rate

import (
	"context"
	"sort"
)

type RepositoryStub struct {
	nextId   int64
	data     []RoleRate
	FailWith error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) Store(ctx context.Context, roleRate RoleRate) (int64, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	s.nextId++
	roleRate.ID = s.nextId
	s.data = append(s.data, roleRate)
	return roleRate.ID, nil
}

func (s *RepositoryStub) GetAllForProject(ctx context.Context, projectID string) ([]RoleRate, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	var roleRates []RoleRate
	for _, roleRate := range s.data {
		if roleRate.ProjectID == projectID {
			roleRates = append(roleRates, roleRate)
		}
	}
	sort.SliceStable(roleRates, func(i, j int) bool {
		return roleRates[i].Role < roleRates[j].Role
	})
	return roleRates, nil
}

func (s *RepositoryStub) Update(ctx context.Context, roleRate RoleRate) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for i, existing := range s.data {
		if existing.ID == roleRate.ID {
			if roleRate.ProjectID == "" {
				roleRate.ProjectID = existing.ProjectID
			}
			s.data[i] = roleRate
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int64) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	for i, existing := range s.data {
		if existing.ID == id {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.data = nil
	s.nextId = 0
	s.FailWith = nil
}
