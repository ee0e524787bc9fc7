package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage"
)

// CreateProject inserts one project record.
func (s *Store) CreateProject(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(project.ID) == "" {
		return fmt.Errorf("project id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, user_id, created_at) VALUES (?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.UserID,
		toMillis(project.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetProject returns one project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Project{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, user_id, created_at FROM projects WHERE id = ?`,
		id,
	)

	var project domain.Project
	var createdAt int64
	if err := row.Scan(&project.ID, &project.Name, &project.UserID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Project{}, storage.ErrNotFound
		}
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	project.CreatedAt = fromMillis(createdAt)
	return project, nil
}

// ListProjectsByUser returns every project owned by the given user.
func (s *Store) ListProjectsByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, user_id, created_at
		   FROM projects
		  WHERE user_id = ?
		  ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects by user: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var project domain.Project
		var createdAt int64
		if err := rows.Scan(&project.ID, &project.Name, &project.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("list projects by user: %w", err)
		}
		project.CreatedAt = fromMillis(createdAt)
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects by user: %w", err)
	}
	return projects, nil
}
