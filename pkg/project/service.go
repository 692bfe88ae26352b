package project

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (Project, error)
	Create(ctx context.Context, project Project) (Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	if project.Status == "" {
		project.Status = StatusActive
	}
	if err := validate(project); err != nil {
		return Project{}, err
	}
	return s.repo.Store(ctx, project)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (Project, error) {
	if err := validate(project); err != nil {
		return Project{}, err
	}
	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		return Project{}, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%s)", project.ID)
		return Project{}, ErrNotFound
	}
	return s.repo.FindByID(ctx, project.ID)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("project not deleted, probably because it does not exist (%s)", id)
		return ErrNotFound
	}
	return nil
}

func validate(project Project) error {
	if project.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !project.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, project.Status)
	}
	if project.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalid)
	}
	return nil
}
