package rate

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAllForProject(ctx context.Context, projectID string) ([]RoleRate, error)
	Create(ctx context.Context, roleRate RoleRate) (RoleRate, error)
	Update(ctx context.Context, roleRate RoleRate) (RoleRate, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAllForProject(ctx context.Context, projectID string) ([]RoleRate, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	return s.repo.GetAllForProject(ctx, projectID)
}

func (s *ServiceImpl) Create(ctx context.Context, roleRate RoleRate) (RoleRate, error) {
	if err := validate(roleRate); err != nil {
		return RoleRate{}, err
	}
	if roleRate.ProjectID == "" {
		return RoleRate{}, fmt.Errorf("%w: project id is required", ErrInvalid)
	}
	id, err := s.repo.Store(ctx, roleRate)
	if err != nil {
		return RoleRate{}, err
	}
	roleRate.ID = id
	return roleRate, nil
}

func (s *ServiceImpl) Update(ctx context.Context, roleRate RoleRate) (RoleRate, error) {
	if err := validate(roleRate); err != nil {
		return RoleRate{}, err
	}
	updated, err := s.repo.Update(ctx, roleRate)
	if err != nil {
		return RoleRate{}, err
	}
	if !updated {
		log.Warnf("role rate not updated, probably because it does not exist (%d)", roleRate.ID)
		return RoleRate{}, ErrNotFound
	}
	return roleRate, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("role rate not deleted, probably because it does not exist (%d)", id)
		return ErrNotFound
	}
	return nil
}

func validate(roleRate RoleRate) error {
	if roleRate.Role == "" {
		return fmt.Errorf("%w: role is required", ErrInvalid)
	}
	if roleRate.CostPerManday <= 0 {
		return fmt.Errorf("%w: cost per manday must be positive", ErrInvalid)
	}
	return nil
}
