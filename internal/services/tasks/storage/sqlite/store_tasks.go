package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage"
)

const taskColumns = `id, title, description, due_date, status, priority, project_id, user_id, created_at, updated_at`

func scanTask(scan func(dest ...any) error) (domain.TaskItem, error) {
	var task domain.TaskItem
	var dueDate sql.NullInt64
	var status string
	var priority string
	var createdAt int64
	var updatedAt int64
	err := scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&dueDate,
		&status,
		&priority,
		&task.ProjectID,
		&task.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.TaskItem{}, err
	}
	task.DueDate = fromNullMillis(dueDate)
	task.Status = domain.Status(status)
	task.Priority = domain.Priority(priority)
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	return task, nil
}

// CreateTask inserts one task record.
func (s *Store) CreateTask(ctx context.Context, task domain.TaskItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(task.ID) == "" {
		return fmt.Errorf("task id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		task.Description,
		toNullMillis(task.DueDate),
		string(task.Status),
		string(task.Priority),
		task.ProjectID,
		task.UserID,
		toMillis(task.CreatedAt),
		toMillis(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetTask returns one task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.TaskItem{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.TaskItem{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TaskItem{}, storage.ErrNotFound
		}
		return domain.TaskItem{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListTasksByProject returns every task owned by the given project.
func (s *Store) ListTasksByProject(ctx context.Context, projectID string) ([]domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at ASC, id ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.TaskItem, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list tasks by project: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	return tasks, nil
}

// CountTasksByProject returns the number of tasks owned by the given project.
func (s *Store) CountTasksByProject(ctx context.Context, projectID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int
	row := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count tasks by project: %w", err)
	}
	return count, nil
}

// UpdateTask persists new field values for an existing task.
func (s *Store) UpdateTask(ctx context.Context, task domain.TaskItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE tasks
		    SET title = ?, description = ?, due_date = ?, status = ?, updated_at = ?
		  WHERE id = ?`,
		task.Title,
		task.Description,
		toNullMillis(task.DueDate),
		string(task.Status),
		toMillis(task.UpdatedAt),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes one task by ID.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListCompletedTasksSince returns completed tasks with at least one history
// entry recorded at or after the cutoff.
func (s *Store) ListCompletedTasksSince(ctx context.Context, cutoff time.Time) ([]domain.TaskItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+taskColumns+`
		   FROM tasks t
		  WHERE t.status = ?
		    AND EXISTS (
		        SELECT 1 FROM task_history h
		         WHERE h.task_id = t.id AND h.change_date >= ?
		    )
		  ORDER BY t.created_at ASC, t.id ASC`,
		string(domain.StatusCompleted),
		toMillis(cutoff),
	)
	if err != nil {
		return nil, fmt.Errorf("list completed tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.TaskItem, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list completed tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list completed tasks: %w", err)
	}
	return tasks, nil
}
