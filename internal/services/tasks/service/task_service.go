// Package service implements the task lifecycle and audit history rules.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/tasktrail/tasktrail/internal/platform/errors"
	"github.com/tasktrail/tasktrail/internal/platform/id"
	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage"
)

// MaxTasksPerProject is the task capacity limit of a single project.
const MaxTasksPerProject = 20

// TaskService enforces the task lifecycle rules: per-project capacity,
// priority immutability, diff-based history recording, and paired
// comment/history writes.
type TaskService struct {
	tasks       storage.TaskStore
	comments    storage.CommentStore
	history     storage.HistoryStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewTaskService creates a TaskService with default clock and id generation.
func NewTaskService(tasks storage.TaskStore, comments storage.CommentStore, history storage.HistoryStore) *TaskService {
	return &TaskService{
		tasks:       tasks,
		comments:    comments,
		history:     history,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// CreateTask creates a task in its target project. Creation fails with
// TASK_CAPACITY_EXCEEDED once the project holds MaxTasksPerProject tasks,
// and nothing is written in that case. No history entry is recorded for
// creation; the audit trail starts at the first update.
//
// The count-then-insert sequence is not atomic: two concurrent creations
// against a nearly-full project can both pass the check. That race is
// accepted; callers needing a hard cap must serialize creation per project.
func (s *TaskService) CreateTask(ctx context.Context, input domain.NewTaskInput) (domain.TaskItem, error) {
	if s == nil || s.tasks == nil {
		return domain.TaskItem{}, errors.New("task store is not configured")
	}

	task, err := domain.NewTask(input, s.clock, s.idGenerator)
	if err != nil {
		return domain.TaskItem{}, err
	}

	count, err := s.tasks.CountTasksByProject(ctx, task.ProjectID)
	if err != nil {
		return domain.TaskItem{}, err
	}
	if count >= MaxTasksPerProject {
		return domain.TaskItem{}, apperrors.WithMetadata(
			apperrors.CodeTaskCapacityExceeded,
			"project task limit reached",
			map[string]string{"project_id": task.ProjectID},
		)
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return domain.TaskItem{}, err
	}
	return task, nil
}

// GetTask returns one task by ID.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (domain.TaskItem, error) {
	if s == nil || s.tasks == nil {
		return domain.TaskItem{}, errors.New("task store is not configured")
	}
	stored, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.TaskItem{}, apperrors.Wrap(apperrors.CodeNotFound, "task not found", err)
		}
		return domain.TaskItem{}, err
	}
	return stored, nil
}

// ListTasksByProject returns every task of the given project. The result is
// never nil.
func (s *TaskService) ListTasksByProject(ctx context.Context, projectID string) ([]domain.TaskItem, error) {
	if s == nil || s.tasks == nil {
		return nil, errors.New("task store is not configured")
	}
	tasks, err := s.tasks.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.TaskItem{}
	}
	return tasks, nil
}

// UpdateTask applies a partial update to a task. The priority carried on the
// patch must match the stored priority; a mismatch fails with
// TASK_PRIORITY_IMMUTABLE before any field comparison or write. Fields the
// patch does not supply keep their stored values and never enter the diff.
// When at least one supplied field differs from the stored value, exactly
// one history entry is appended with the serialized change set; an empty
// diff records no history.
//
// The entity write and the history write are not one transaction: a history
// failure after a successful update leaves the change unaudited.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, patch domain.TaskPatch) (domain.TaskItem, error) {
	if s == nil || s.tasks == nil || s.history == nil {
		return domain.TaskItem{}, errors.New("task service is not configured")
	}

	stored, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.TaskItem{}, apperrors.Wrap(apperrors.CodeNotFound, "task not found", err)
		}
		return domain.TaskItem{}, err
	}

	if patch.Priority != stored.Priority {
		return domain.TaskItem{}, apperrors.WithMetadata(
			apperrors.CodeTaskPriorityImmutable,
			"task priority can not be changed",
			map[string]string{"stored": string(stored.Priority), "requested": string(patch.Priority)},
		)
	}

	changes := patch.Diff(stored)
	updated := stored
	if !changes.Empty() {
		updated = patch.Apply(stored, s.clock().UTC())
	}
	if err := s.tasks.UpdateTask(ctx, updated); err != nil {
		return domain.TaskItem{}, err
	}

	if !changes.Empty() {
		blob, err := changes.Encode()
		if err != nil {
			return domain.TaskItem{}, err
		}
		if err := s.appendHistory(ctx, taskID, blob); err != nil {
			return domain.TaskItem{}, err
		}
	}
	return updated, nil
}

// DeleteTask removes a task. Store failures propagate unmodified.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if s == nil || s.tasks == nil {
		return errors.New("task store is not configured")
	}
	if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, "task not found", err)
		}
		return err
	}
	return s.tasks.DeleteTask(ctx, taskID)
}

// AddComment records a comment on a task, then appends exactly one history
// entry describing the addition, in that order. The two writes are not one
// transaction; a history failure after the comment write leaves the comment
// unaudited.
func (s *TaskService) AddComment(ctx context.Context, taskID, body, createdBy string) error {
	if s == nil || s.tasks == nil || s.comments == nil || s.history == nil {
		return errors.New("task service is not configured")
	}

	if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.Wrap(apperrors.CodeNotFound, "task not found", err)
		}
		return err
	}

	commentID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate comment id: %w", err)
	}
	comment := domain.TaskComment{
		ID:        commentID,
		TaskID:    taskID,
		Body:      body,
		CreatedBy: createdBy,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return err
	}

	blob, err := domain.EncodeCommentEvent(body)
	if err != nil {
		return err
	}
	return s.appendHistory(ctx, taskID, blob)
}

// ListCommentsByTask returns every comment on the given task, oldest first.
func (s *TaskService) ListCommentsByTask(ctx context.Context, taskID string) ([]domain.TaskComment, error) {
	if s == nil || s.comments == nil {
		return nil, errors.New("comment store is not configured")
	}
	comments, err := s.comments.ListCommentsByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.TaskComment{}
	}
	return comments, nil
}

// ListHistoryByTask returns the audit trail of the given task, oldest first.
func (s *TaskService) ListHistoryByTask(ctx context.Context, taskID string) ([]domain.TaskHistoryEntry, error) {
	if s == nil || s.history == nil {
		return nil, errors.New("history store is not configured")
	}
	entries, err := s.history.ListHistoryByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.TaskHistoryEntry{}
	}
	return entries, nil
}

func (s *TaskService) appendHistory(ctx context.Context, taskID, changes string) error {
	entryID, err := s.idGenerator()
	if err != nil {
		return fmt.Errorf("generate history id: %w", err)
	}
	return s.history.AppendHistory(ctx, domain.TaskHistoryEntry{
		ID:         entryID,
		TaskID:     taskID,
		Changes:    changes,
		ChangeDate: s.clock().UTC(),
	})
}
