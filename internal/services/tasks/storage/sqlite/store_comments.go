package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
)

// CreateComment inserts one task comment record.
func (s *Store) CreateComment(ctx context.Context, comment domain.TaskComment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(comment.ID) == "" {
		return fmt.Errorf("comment id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO task_comments (id, task_id, body, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		comment.ID,
		comment.TaskID,
		comment.Body,
		comment.CreatedBy,
		toMillis(comment.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListCommentsByTask returns every comment on the given task, oldest first.
func (s *Store) ListCommentsByTask(ctx context.Context, taskID string) ([]domain.TaskComment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, task_id, body, created_by, created_at
		   FROM task_comments
		  WHERE task_id = ?
		  ORDER BY created_at ASC, id ASC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments by task: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.TaskComment, 0)
	for rows.Next() {
		var comment domain.TaskComment
		var createdAt int64
		if err := rows.Scan(&comment.ID, &comment.TaskID, &comment.Body, &comment.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("list comments by task: %w", err)
		}
		comment.CreatedAt = fromMillis(createdAt)
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments by task: %w", err)
	}
	return comments, nil
}
