package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/timeentry"
)

// entryService defines the minimal interface needed by EntryHandler.
type entryService interface {
	Create(ctx context.Context, input timeentry.CreateInput) (*domain.TimeEntry, error)
	Update(ctx context.Context, input timeentry.UpdateInput) (*domain.TimeEntry, error)
	Delete(ctx context.Context, input timeentry.DeleteInput) error
	Get(ctx context.Context, entryID uuid.UUID) (*domain.TimeEntry, error)
	List(ctx context.Context, input timeentry.ListInput) ([]*domain.TimeEntry, error)
}

// EntryHandler serves manual time entry endpoints.
type EntryHandler struct {
	svc entryService
	log *slog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(svc entryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{svc: svc, log: logger.With("handler", "entry")}
}

type createEntryRequest struct {
	ProjectID    *string    `json:"project_id"`
	TaskID       *string    `json:"task_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	DurationSecs *int64     `json:"duration_secs"`
	Notes        *string    `json:"notes"`
	Override     bool       `json:"override"`
}

// Create handles POST /entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := timeentry.CreateInput{
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DurationSecs: req.DurationSecs,
		Notes:        req.Notes,
		Override:     req.Override,
	}
	var ok bool
	if input.ProjectID, ok = optionalUUID(w, req.ProjectID, "project_id"); !ok {
		return
	}
	if input.TaskID, ok = optionalUUID(w, req.TaskID, "task_id"); !ok {
		return
	}

	entry, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

type updateEntryRequest struct {
	ProjectID    *string    `json:"project_id"`
	TaskID       *string    `json:"task_id"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	DurationSecs *int64     `json:"duration_secs"`
	Notes        *string    `json:"notes"`
	Override     bool       `json:"override"`
	Unlock       bool       `json:"unlock"`
}

// Update handles PUT /entries/{id}. Absent fields keep their value. Admins may
// pass unlock to edit a frozen week, reopening its timesheet to draft.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := timeentry.UpdateInput{
		EntryID:      entryID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DurationSecs: req.DurationSecs,
		Notes:        req.Notes,
		Override:     req.Override,
		Unlock:       req.Unlock,
	}
	if input.ProjectID, ok = optionalUUID(w, req.ProjectID, "project_id"); !ok {
		return
	}
	if input.TaskID, ok = optionalUUID(w, req.TaskID, "task_id"); !ok {
		return
	}

	entry, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /entries/{id}. Admins may pass ?unlock=true to delete
// from a frozen week, reopening its timesheet to draft.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	input := timeentry.DeleteInput{
		EntryID: entryID,
		Unlock:  r.URL.Query().Get("unlock") == "true",
	}

	if err := h.svc.Delete(r.Context(), input); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /entries/{id}.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.svc.Get(r.Context(), entryID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// List handles GET /entries with user_id, project_id, task_id, date_from,
// date_to, limit, and offset query parameters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	input := timeentry.ListInput{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	var err error
	if input.UserID, err = queryUUID(r, "user_id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	if input.ProjectID, err = queryUUID(r, "project_id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid project_id")
		return
	}
	if input.TaskID, err = queryUUID(r, "task_id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task_id")
		return
	}
	if input.DateFrom, err = queryDate(r, "date_from"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_from")
		return
	}
	if input.DateTo, err = queryDate(r, "date_to"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_to")
		return
	}

	entries, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}
