package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
)

func TestGetPerformanceReportGroupsByUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	env.tasks.completedSince = []domain.TaskItem{
		{ID: "t1", UserID: "user-a", Status: domain.StatusCompleted},
		{ID: "t2", UserID: "user-b", Status: domain.StatusCompleted},
		{ID: "t3", UserID: "user-a", Status: domain.StatusCompleted},
	}

	reports, err := env.svc.GetPerformanceReport(context.Background())
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %v, want 2 users", reports)
	}
	if reports[0].UserID != "user-a" || reports[0].AverageTasksCompleted != 2 {
		t.Fatalf("reports[0] = %+v, want user-a with 2", reports[0])
	}
	if reports[1].UserID != "user-b" || reports[1].AverageTasksCompleted != 1 {
		t.Fatalf("reports[1] = %+v, want user-b with 1", reports[1])
	}
}

func TestGetPerformanceReportUsesThirtyDayCutoff(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if _, err := env.svc.GetPerformanceReport(context.Background()); err != nil {
		t.Fatalf("get report: %v", err)
	}

	want := env.now.UTC().AddDate(0, 0, -30)
	if !env.tasks.lastCutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", env.tasks.lastCutoff, want)
	}
}

func TestGetPerformanceReportEmptyWindow(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	reports, err := env.svc.GetPerformanceReport(context.Background())
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if reports == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(reports) != 0 {
		t.Fatalf("reports = %v, want none", reports)
	}
}

func TestGetPerformanceReportStoreError(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	storeErr := errors.New("query failed")
	env.tasks.listCompletedErr = storeErr

	if _, err := env.svc.GetPerformanceReport(context.Background()); !errors.Is(err, storeErr) {
		t.Fatalf("error = %v, want %v", err, storeErr)
	}
}
