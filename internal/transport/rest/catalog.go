package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/catalog"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	CreateProject(ctx context.Context, input catalog.CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, input catalog.UpdateProjectInput) (*domain.Project, error)
	SetProjectStatus(ctx context.Context, projectID uuid.UUID, status domain.CatalogStatus) (*domain.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]*domain.Project, error)
	CreateTask(ctx context.Context, input catalog.CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, input catalog.UpdateTaskInput) (*domain.Task, error)
	SetTaskStatus(ctx context.Context, taskID uuid.UUID, status domain.CatalogStatus) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
}

// CatalogHandler serves project and task endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type projectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CreateProject handles POST /projects. Admin-only.
func (h *CatalogHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.CreateProject(r.Context(), catalog.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(p))
}

// UpdateProject handles PUT /projects/{id}. Admin-only.
func (h *CatalogHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.UpdateProject(r.Context(), catalog.UpdateProjectInput{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetProjectStatus handles PUT /projects/{id}/status. Admin-only.
func (h *CatalogHandler) SetProjectStatus(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.svc.SetProjectStatus(r.Context(), projectID, domain.CatalogStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// GetProject handles GET /projects/{id}.
func (h *CatalogHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetProject(r.Context(), projectID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

// ListProjects handles GET /projects?active_only=true.
func (h *CatalogHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	projects, err := h.svc.ListProjects(r.Context(), activeOnly)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type taskRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CreateTask handles POST /projects/{id}/tasks. Admin-only.
func (h *CatalogHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.svc.CreateTask(r.Context(), catalog.CreateTaskInput{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

// ListTasks handles GET /projects/{id}/tasks.
func (h *CatalogHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), projectID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateTask handles PUT /tasks/{id}. Admin-only.
func (h *CatalogHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), catalog.UpdateTaskInput{
		TaskID:      taskID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// SetTaskStatus handles PUT /tasks/{id}/status. Admin-only.
func (h *CatalogHandler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.svc.SetTaskStatus(r.Context(), taskID, domain.CatalogStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}
