// Package storage defines persistence contracts for task management state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ProjectStore persists project records.
type ProjectStore interface {
	CreateProject(ctx context.Context, project domain.Project) error
	GetProject(ctx context.Context, id string) (domain.Project, error)
	ListProjectsByUser(ctx context.Context, userID string) ([]domain.Project, error)
}

// TaskStore persists task records.
type TaskStore interface {
	CreateTask(ctx context.Context, task domain.TaskItem) error
	GetTask(ctx context.Context, id string) (domain.TaskItem, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]domain.TaskItem, error)
	CountTasksByProject(ctx context.Context, projectID string) (int, error)
	UpdateTask(ctx context.Context, task domain.TaskItem) error
	DeleteTask(ctx context.Context, id string) error
	// ListCompletedTasksSince returns completed tasks that have at least one
	// history entry recorded at or after the cutoff.
	ListCompletedTasksSince(ctx context.Context, cutoff time.Time) ([]domain.TaskItem, error)
}

// CommentStore persists task comment records.
type CommentStore interface {
	CreateComment(ctx context.Context, comment domain.TaskComment) error
	ListCommentsByTask(ctx context.Context, taskID string) ([]domain.TaskComment, error)
}

// HistoryStore persists the append-only task audit trail. Entries are never
// updated or deleted.
type HistoryStore interface {
	AppendHistory(ctx context.Context, entry domain.TaskHistoryEntry) error
	ListHistoryByTask(ctx context.Context, taskID string) ([]domain.TaskHistoryEntry, error)
}
