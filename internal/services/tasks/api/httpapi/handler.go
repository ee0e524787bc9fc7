// Package httpapi exposes the task service over JSON HTTP endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/tasktrail/tasktrail/internal/platform/errors"
	"github.com/tasktrail/tasktrail/internal/services/tasks/domain"
	"github.com/tasktrail/tasktrail/internal/services/tasks/service"
)

// Handler routes HTTP requests to the task and project services.
type Handler struct {
	tasks    *service.TaskService
	projects *service.ProjectService
}

// NewHandler builds a Handler bound to the given services.
func NewHandler(tasks *service.TaskService, projects *service.ProjectService) *Handler {
	return &Handler{tasks: tasks, projects: projects}
}

// RegisterRoutes registers the task API endpoints on the provided mux. The
// performance report endpoint always requires a manager token; the remaining
// endpoints require a valid token only when the authenticator carries a key.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, auth *Authenticator) {
	if mux == nil {
		return
	}
	if auth == nil {
		auth = NewAuthenticator("")
	}

	mux.Handle("POST /api/projects", auth.RequireToken(traced(http.HandlerFunc(h.handleCreateProject))))
	mux.Handle("GET /api/projects/{userID}", auth.RequireToken(traced(http.HandlerFunc(h.handleListProjects))))

	mux.Handle("POST /api/tasks", auth.RequireToken(traced(http.HandlerFunc(h.handleCreateTask))))
	mux.Handle("GET /api/tasks/{projectID}", auth.RequireToken(traced(http.HandlerFunc(h.handleListTasks))))
	mux.Handle("PATCH /api/tasks", auth.RequireToken(traced(http.HandlerFunc(h.handleUpdateTask))))
	mux.Handle("DELETE /api/tasks/{id}", auth.RequireToken(traced(http.HandlerFunc(h.handleDeleteTask))))
	mux.Handle("POST /api/tasks/{taskID}/comments", auth.RequireToken(traced(http.HandlerFunc(h.handleAddComment))))

	mux.Handle("GET /api/tasks/performance-report", auth.RequireRole(RoleManager, traced(http.HandlerFunc(h.handlePerformanceReport))))

	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

type createProjectRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

type projectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ProjectID   string     `json:"project_id"`
	UserID      string     `json:"user_id"`
}

// updateTaskRequest carries a partial task update. Absent and null fields
// both mean "keep the stored value"; priority must always be supplied and
// must match the stored priority.
type updateTaskRequest struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
	Priority    string     `json:"priority"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ProjectID   string     `json:"project_id"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type addCommentRequest struct {
	Comment   string `json:"comment"`
	CreatedBy string `json:"created_by"`
}

type performanceReportResponse struct {
	UserID                string `json:"user_id"`
	AverageTasksCompleted int    `json:"average_tasks_completed"`
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	project, err := h.projects.CreateProject(r.Context(), domain.NewProjectInput{
		Name:   req.Name,
		UserID: req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjectsByUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, toProjectResponse(project))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := h.tasks.CreateTask(r.Context(), domain.NewTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		Priority:    priority,
		ProjectID:   req.ProjectID,
		UserID:      req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasksByProject(r.Context(), r.PathValue("projectID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResponse(task))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    domain.Priority(strings.TrimSpace(req.Priority)),
	}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		patch.Status = &status
	}
	task, err := h.tasks.UpdateTask(r.Context(), req.ID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	body := strings.TrimSpace(req.Comment)
	if body == "" {
		writeError(w, apperrors.New(apperrors.CodeCommentBodyEmpty, "comment text is required"))
		return
	}
	createdBy := strings.TrimSpace(req.CreatedBy)
	if createdBy == "" {
		writeError(w, apperrors.New(apperrors.CodeCommentAuthorEmpty, "comment author is required"))
		return
	}
	if err := h.tasks.AddComment(r.Context(), r.PathValue("taskID"), body, createdBy); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handlePerformanceReport(w http.ResponseWriter, r *http.Request) {
	reports, err := h.tasks.GetPerformanceReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]performanceReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, performanceReportResponse{
			UserID:                report.UserID,
			AverageTasksCompleted: report.AverageTasksCompleted,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toProjectResponse(project domain.Project) projectResponse {
	return projectResponse{
		ID:        project.ID,
		Name:      project.Name,
		UserID:    project.UserID,
		CreatedAt: project.CreatedAt,
	}
}

func toTaskResponse(task domain.TaskItem) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		ProjectID:   task.ProjectID,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error: errorDetail{Code: string(apperrors.CodeUnknown), Message: "invalid request body"},
		})
		return false
	}
	return true
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Printf("internal error: %v", err)
		appErr = apperrors.New(apperrors.CodeUnknown, "internal error")
	}
	writeJSON(w, appErr.Code.HTTPStatus(), errorBody{
		Error: errorDetail{Code: string(appErr.Code), Message: appErr.Message},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
