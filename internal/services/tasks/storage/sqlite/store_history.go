package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
)

// AppendHistory inserts one audit trail entry. The table is append-only:
// no update or delete statement exists for it anywhere in this package.
func (s *Store) AppendHistory(ctx context.Context, entry domain.TaskHistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("history entry id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO task_history (id, task_id, changes, change_date) VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.TaskID,
		entry.Changes,
		toMillis(entry.ChangeDate),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ListHistoryByTask returns every audit entry for the given task, oldest first.
func (s *Store) ListHistoryByTask(ctx context.Context, taskID string) ([]domain.TaskHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, task_id, changes, change_date
		   FROM task_history
		  WHERE task_id = ?
		  ORDER BY change_date ASC, id ASC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list history by task: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.TaskHistoryEntry, 0)
	for rows.Next() {
		var entry domain.TaskHistoryEntry
		var changeDate int64
		if err := rows.Scan(&entry.ID, &entry.TaskID, &entry.Changes, &changeDate); err != nil {
			return nil, fmt.Errorf("list history by task: %w", err)
		}
		entry.ChangeDate = fromMillis(changeDate)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history by task: %w", err)
	}
	return entries, nil
}
