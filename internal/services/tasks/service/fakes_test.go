package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/storage"
)

// fakeTaskStore is an in-memory TaskStore with injectable failures. Every
// fake appends to a shared op log so tests can assert write ordering.
type fakeTaskStore struct {
	tasks          map[string]domain.TaskItem
	completedSince []domain.TaskItem
	lastCutoff     time.Time

	createErr        error
	updateErr        error
	deleteErr        error
	listCompletedErr error

	creates int
	updates int
	deletes int

	ops *[]string
}

func newFakeTaskStore(ops *[]string) *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]domain.TaskItem), ops: ops}
}

func (f *fakeTaskStore) logOp(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeTaskStore) CreateTask(_ context.Context, task domain.TaskItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creates++
	f.logOp("create-task")
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) GetTask(_ context.Context, id string) (domain.TaskItem, error) {
	task, ok := f.tasks[id]
	if !ok {
		return domain.TaskItem{}, storage.ErrNotFound
	}
	return task, nil
}

func (f *fakeTaskStore) ListTasksByProject(_ context.Context, projectID string) ([]domain.TaskItem, error) {
	tasks := make([]domain.TaskItem, 0)
	for _, task := range f.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (f *fakeTaskStore) CountTasksByProject(_ context.Context, projectID string) (int, error) {
	count := 0
	for _, task := range f.tasks {
		if task.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaskStore) UpdateTask(_ context.Context, task domain.TaskItem) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return storage.ErrNotFound
	}
	f.updates++
	f.logOp("update-task")
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) DeleteTask(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	f.deletes++
	f.logOp("delete-task")
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) ListCompletedTasksSince(_ context.Context, cutoff time.Time) ([]domain.TaskItem, error) {
	if f.listCompletedErr != nil {
		return nil, f.listCompletedErr
	}
	f.lastCutoff = cutoff
	return f.completedSince, nil
}

type fakeCommentStore struct {
	comments  []domain.TaskComment
	createErr error
	ops       *[]string
}

func (f *fakeCommentStore) CreateComment(_ context.Context, comment domain.TaskComment) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.ops != nil {
		*f.ops = append(*f.ops, "create-comment")
	}
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentStore) ListCommentsByTask(_ context.Context, taskID string) ([]domain.TaskComment, error) {
	comments := make([]domain.TaskComment, 0)
	for _, comment := range f.comments {
		if comment.TaskID == taskID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

type fakeHistoryStore struct {
	entries   []domain.TaskHistoryEntry
	appendErr error
	ops       *[]string
}

func (f *fakeHistoryStore) AppendHistory(_ context.Context, entry domain.TaskHistoryEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if f.ops != nil {
		*f.ops = append(*f.ops, "append-history")
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistoryStore) ListHistoryByTask(_ context.Context, taskID string) ([]domain.TaskHistoryEntry, error) {
	entries := make([]domain.TaskHistoryEntry, 0)
	for _, entry := range f.entries {
		if entry.TaskID == taskID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type fakeProjectStore struct {
	projects  []domain.Project
	createErr error
}

func (f *fakeProjectStore) CreateProject(_ context.Context, project domain.Project) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeProjectStore) GetProject(_ context.Context, id string) (domain.Project, error) {
	for _, project := range f.projects {
		if project.ID == id {
			return project, nil
		}
	}
	return domain.Project{}, storage.ErrNotFound
}

func (f *fakeProjectStore) ListProjectsByUser(_ context.Context, userID string) ([]domain.Project, error) {
	projects := make([]domain.Project, 0)
	for _, project := range f.projects {
		if project.UserID == userID {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

// testEnv bundles a TaskService wired to fakes with a fixed clock and
// sequential id generation.
type testEnv struct {
	svc      *TaskService
	tasks    *fakeTaskStore
	comments *fakeCommentStore
	history  *fakeHistoryStore
	now      time.Time
	ops      []string
}

func newTestEnv() *testEnv {
	env := &testEnv{
		now: time.Date(2026, time.August, 20, 15, 0, 0, 0, time.UTC),
	}
	env.tasks = newFakeTaskStore(&env.ops)
	env.comments = &fakeCommentStore{ops: &env.ops}
	env.history = &fakeHistoryStore{ops: &env.ops}

	seq := 0
	env.svc = NewTaskService(env.tasks, env.comments, env.history)
	env.svc.clock = func() time.Time { return env.now }
	env.svc.idGenerator = func() (string, error) {
		seq++
		return fmt.Sprintf("id-%d", seq), nil
	}
	return env
}

func (e *testEnv) seedTask(id, projectID, userID string) domain.TaskItem {
	task := domain.TaskItem{
		ID:        id,
		Title:     "Task " + id,
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: e.now.Add(-time.Hour),
		UpdatedAt: e.now.Add(-time.Hour),
	}
	e.tasks.tasks[id] = task
	return task
}
