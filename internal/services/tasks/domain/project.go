package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/tasktrail/tasktrail/internal/platform/errors"
	"github.com/tasktrail/tasktrail/internal/platform/id"
)

// Project represents a user-owned container for tasks.
type Project struct {
	ID        string
	Name      string
	UserID    string
	CreatedAt time.Time
}

// NewProjectInput describes a project to be created, lacking an identity.
type NewProjectInput struct {
	Name   string
	UserID string
}

// NewProject validates input and builds a project with a generated ID.
func NewProject(input NewProjectInput, now func() time.Time, idGenerator func() (string, error)) (Project, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.Name = strings.TrimSpace(input.Name)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.Name == "" {
		return Project{}, apperrors.New(apperrors.CodeProjectNameEmpty, "project name is required")
	}
	if input.UserID == "" {
		return Project{}, apperrors.New(apperrors.CodeProjectUserIDEmpty, "project user id is required")
	}

	projectID, err := idGenerator()
	if err != nil {
		return Project{}, fmt.Errorf("generate project id: %w", err)
	}

	return Project{
		ID:        projectID,
		Name:      input.Name,
		UserID:    input.UserID,
		CreatedAt: now().UTC(),
	}, nil
}

// CanDeleteProject reports whether a project holding the given tasks is
// eligible for deletion: every owned task must be completed. A project with
// no tasks is eligible.
func CanDeleteProject(tasks []TaskItem) bool {
	for _, task := range tasks {
		if task.Status != StatusCompleted {
			return false
		}
	}
	return true
}
