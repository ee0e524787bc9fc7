package domain

import "time"

// TaskHistoryEntry is one immutable audit record describing a mutation or
// comment event on a task. Entries are append-only: they are written exactly
// once and never updated or deleted.
type TaskHistoryEntry struct {
	ID         string
	TaskID     string
	Changes    string // serialized ChangeSet or comment event blob
	ChangeDate time.Time
}

// TaskComment is one free-text comment on a task, immutable once created.
type TaskComment struct {
	ID        string
	TaskID    string
	Body      string
	CreatedBy string
	CreatedAt time.Time
}

// UserPerformanceReport summarizes one user's completed tasks inside the
// report lookback window.
//
// AverageTasksCompleted is, despite its name, the raw count of qualifying
// tasks in the window. The name is part of the existing report contract and
// is kept as-is.
type UserPerformanceReport struct {
	UserID                string
	AverageTasksCompleted int
}
