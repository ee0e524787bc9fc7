package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/tasktrail/tasktrail/internal/platform/errors"
	"github.com/tasktrail/tasktrail/internal/platform/id"
)

// Status describes the workflow state of a task.
type Status string

const (
	// StatusUnspecified indicates no status has been assigned yet.
	StatusUnspecified Status = ""
	// StatusPending indicates the task has not been started.
	StatusPending Status = "pending"
	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "in_progress"
	// StatusCompleted indicates the task is done.
	StatusCompleted Status = "completed"
)

// Valid reports whether the status is a known value. The unspecified status
// is valid: tasks may exist without a workflow state.
func (s Status) Valid() bool {
	switch s {
	case StatusUnspecified, StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus maps a wire value to a Status.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.TrimSpace(value))
	if !status.Valid() {
		return StatusUnspecified, apperrors.New(apperrors.CodeTaskInvalidStatus, fmt.Sprintf("unknown task status %q", value))
	}
	return status, nil
}

// Priority describes the urgency level of a task. It is assigned at creation
// and never changes afterwards.
type Priority string

const (
	// PriorityUnspecified indicates a missing priority value.
	PriorityUnspecified Priority = ""
	// PriorityLow marks low-urgency tasks.
	PriorityLow Priority = "low"
	// PriorityMedium marks default-urgency tasks.
	PriorityMedium Priority = "medium"
	// PriorityHigh marks high-urgency tasks.
	PriorityHigh Priority = "high"
)

// Valid reports whether the priority is one of the assignable levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority maps a wire value to a Priority.
func ParsePriority(value string) (Priority, error) {
	priority := Priority(strings.TrimSpace(value))
	if !priority.Valid() {
		return PriorityUnspecified, apperrors.New(apperrors.CodeTaskInvalidPriority, fmt.Sprintf("unknown task priority %q", value))
	}
	return priority, nil
}

// TaskItem represents one task owned by a project.
type TaskItem struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Status      Status
	Priority    Priority
	ProjectID   string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTaskInput describes a task to be created, lacking an identity.
type NewTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      Status
	Priority    Priority
	ProjectID   string
	UserID      string
}

// NewTask validates input and builds a task with a generated ID and timestamps.
func NewTask(input NewTaskInput, now func() time.Time, idGenerator func() (string, error)) (TaskItem, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	input.Title = strings.TrimSpace(input.Title)
	input.ProjectID = strings.TrimSpace(input.ProjectID)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.Title == "" {
		return TaskItem{}, apperrors.New(apperrors.CodeTaskTitleEmpty, "task title is required")
	}
	if input.ProjectID == "" {
		return TaskItem{}, apperrors.New(apperrors.CodeTaskProjectIDEmpty, "task project id is required")
	}
	if input.UserID == "" {
		return TaskItem{}, apperrors.New(apperrors.CodeTaskUserIDEmpty, "task user id is required")
	}
	if !input.Priority.Valid() {
		return TaskItem{}, apperrors.New(apperrors.CodeTaskInvalidPriority, "task priority is required")
	}
	if !input.Status.Valid() {
		return TaskItem{}, apperrors.New(apperrors.CodeTaskInvalidStatus, "task status is invalid")
	}

	taskID, err := idGenerator()
	if err != nil {
		return TaskItem{}, fmt.Errorf("generate task id: %w", err)
	}

	createdAt := now().UTC()
	return TaskItem{
		ID:          taskID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Priority:    input.Priority,
		ProjectID:   input.ProjectID,
		UserID:      input.UserID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}
