package service

import (
	"context"
	"errors"
	"time"

	"github.com/tasktrail/tasktrail/internal/platform/id"
	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage"
)

// ProjectService manages project records.
type ProjectService struct {
	projects    storage.ProjectStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewProjectService creates a ProjectService with default dependencies.
func NewProjectService(projects storage.ProjectStore) *ProjectService {
	return &ProjectService{
		projects:    projects,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// CreateProject persists a new project with a generated identity.
func (s *ProjectService) CreateProject(ctx context.Context, input domain.NewProjectInput) (domain.Project, error) {
	if s == nil || s.projects == nil {
		return domain.Project{}, errors.New("project store is not configured")
	}
	project, err := domain.NewProject(input, s.clock, s.idGenerator)
	if err != nil {
		return domain.Project{}, err
	}
	if err := s.projects.CreateProject(ctx, project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// ListProjectsByUser returns every project owned by the given user. The
// result is never nil.
func (s *ProjectService) ListProjectsByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	if s == nil || s.projects == nil {
		return nil, errors.New("project store is not configured")
	}
	projects, err := s.projects.ListProjectsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}
