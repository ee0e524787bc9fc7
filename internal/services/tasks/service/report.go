package service

import (
	"context"
	"errors"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
)

// reportLookbackDays is the rolling window, in days, a completed task must
// have been changed within to count toward the performance report.
const reportLookbackDays = 30

// GetPerformanceReport aggregates completed tasks by owning user. A task
// qualifies when it is completed and has at least one history entry inside
// the lookback window (inclusive lower bound). Users with no qualifying
// tasks are absent from the result. Output order follows the first
// appearance of each user in the store's result set.
//
// AverageTasksCompleted on each report is the raw count of qualifying tasks
// in the window; see domain.UserPerformanceReport.
func (s *TaskService) GetPerformanceReport(ctx context.Context) ([]domain.UserPerformanceReport, error) {
	if s == nil || s.tasks == nil {
		return nil, errors.New("task store is not configured")
	}

	cutoff := s.clock().UTC().AddDate(0, 0, -reportLookbackDays)
	completed, err := s.tasks.ListCompletedTasksSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(completed))
	order := make([]string, 0, len(completed))
	for _, task := range completed {
		if _, seen := counts[task.UserID]; !seen {
			order = append(order, task.UserID)
		}
		counts[task.UserID]++
	}

	reports := make([]domain.UserPerformanceReport, 0, len(order))
	for _, userID := range order {
		reports = append(reports, domain.UserPerformanceReport{
			UserID:                userID,
			AverageTasksCompleted: counts[userID],
		})
	}
	return reports, nil
}
