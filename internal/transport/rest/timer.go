package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/tracker"
)

// trackerService defines the minimal interface needed by TimerHandler.
type trackerService interface {
	Start(ctx context.Context, input tracker.StartInput) (*domain.TimerSession, error)
	Heartbeat(ctx context.Context, input tracker.HeartbeatInput) (*domain.TimerSession, error)
	Stop(ctx context.Context, input tracker.StopInput) (*domain.TimeEntry, error)
	Active(ctx context.Context) (*domain.TimerSession, error)
}

// TimerHandler serves the live timer endpoints.
type TimerHandler struct {
	svc trackerService
	log *slog.Logger
}

// NewTimerHandler creates a TimerHandler.
func NewTimerHandler(svc trackerService, logger *slog.Logger) *TimerHandler {
	return &TimerHandler{svc: svc, log: logger.With("handler", "timer")}
}

type startTimerRequest struct {
	ProjectID *string `json:"project_id"`
	TaskID    *string `json:"task_id"`
}

// Start handles POST /timer/start.
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startTimerRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	input := tracker.StartInput{}
	var ok bool
	if input.ProjectID, ok = optionalUUID(w, req.ProjectID, "project_id"); !ok {
		return
	}
	if input.TaskID, ok = optionalUUID(w, req.TaskID, "task_id"); !ok {
		return
	}

	session, err := h.svc.Start(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

type heartbeatRequest struct {
	SessionID string `json:"session_id"`
}

// Heartbeat handles POST /timer/heartbeat.
func (h *TimerHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session_id")
		return
	}

	session, err := h.svc.Heartbeat(r.Context(), tracker.HeartbeatInput{SessionID: sessionID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

type stopTimerRequest struct {
	SessionID *string `json:"session_id"`
	Notes     *string `json:"notes"`
}

// Stop handles POST /timer/stop. The body is optional; without it the caller's
// active timer is stopped. The finalized entry is returned.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	var req stopTimerRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	input := tracker.StopInput{Notes: req.Notes}
	var ok bool
	if input.SessionID, ok = optionalUUID(w, req.SessionID, "session_id"); !ok {
		return
	}

	entry, err := h.svc.Stop(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Active handles GET /timer/active. Responds with null when no timer runs.
func (h *TimerHandler) Active(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Active(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if session == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}
