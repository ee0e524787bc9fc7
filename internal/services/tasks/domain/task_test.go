package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/tasktrail/tasktrail/internal/platform/errors"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func staticID(value string) func() (string, error) {
	return func() (string, error) { return value, nil }
}

func TestNewTaskAssignsIdentityAndTimestamps(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewTask(NewTaskInput{
		Title:     "Write release notes",
		Priority:  PriorityMedium,
		Status:    StatusPending,
		ProjectID: "proj-1",
		UserID:    "user-1",
	}, fixedClock(now), staticID("task-1"))
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.ID != "task-1" {
		t.Fatalf("id = %q, want %q", task.ID, "task-1")
	}
	if !task.CreatedAt.Equal(now) || !task.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want %v", task.CreatedAt, task.UpdatedAt, now)
	}
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	base := NewTaskInput{
		Title:     "Fix login flow",
		Priority:  PriorityHigh,
		ProjectID: "proj-1",
		UserID:    "user-1",
	}

	testCases := []struct {
		name string
		mut  func(*NewTaskInput)
		code apperrors.Code
	}{
		{"blank title", func(in *NewTaskInput) { in.Title = "  " }, apperrors.CodeTaskTitleEmpty},
		{"missing project", func(in *NewTaskInput) { in.ProjectID = "" }, apperrors.CodeTaskProjectIDEmpty},
		{"missing user", func(in *NewTaskInput) { in.UserID = "" }, apperrors.CodeTaskUserIDEmpty},
		{"missing priority", func(in *NewTaskInput) { in.Priority = PriorityUnspecified }, apperrors.CodeTaskInvalidPriority},
		{"bogus status", func(in *NewTaskInput) { in.Status = Status("archived") }, apperrors.CodeTaskInvalidStatus},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mut(&input)
			_, err := NewTask(input, nil, nil)
			if !errors.Is(err, apperrors.New(tc.code, "")) {
				t.Fatalf("error = %v, want code %s", err, tc.code)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	priority, err := ParsePriority(" high ")
	if err != nil {
		t.Fatalf("parse priority: %v", err)
	}
	if priority != PriorityHigh {
		t.Fatalf("priority = %q, want %q", priority, PriorityHigh)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, apperrors.New(apperrors.CodeTaskInvalidPriority, "")) {
		t.Fatalf("expected invalid priority error, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseStatus("completed")
	if err != nil {
		t.Fatalf("parse status: %v", err)
	}
	if status != StatusCompleted {
		t.Fatalf("status = %q, want %q", status, StatusCompleted)
	}
	if empty, err := ParseStatus(""); err != nil || empty != StatusUnspecified {
		t.Fatalf("expected unspecified status to parse, got %q err %v", empty, err)
	}
	if _, err := ParseStatus("done"); !errors.Is(err, apperrors.New(apperrors.CodeTaskInvalidStatus, "")) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}
