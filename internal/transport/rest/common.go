// Package rest exposes the HTTP API. Handlers are thin: decode, call the
// service, translate domain errors to status codes, encode.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// dateLayout is the wire format for calendar dates (week starts, entry dates).
const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError translates domain sentinel errors into HTTP status codes.
// Anything unrecognized is a 500 and gets logged with full detail.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrLocked):
		writeError(w, http.StatusLocked, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the request body into dst. Returns false after writing a
// 400 response when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathUUID extracts a UUID path parameter registered as {name} in the route
// pattern. Returns false after writing a 400 response on a malformed value.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional UUID query parameter. The error return is
// non-nil only when the parameter is present and malformed.
func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter into a canonical
// midnight-UTC date.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// queryInt parses an optional integer query parameter, returning def when
// absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// optionalUUID parses an optional UUID string from a request body. Returns
// false after writing a 400 response when the value is present but malformed.
func optionalUUID(w http.ResponseWriter, s *string, field string) (*uuid.UUID, bool) {
	if s == nil {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+field)
		return nil, false
	}
	return &id, true
}

// parseDate parses a required YYYY-MM-DD body field.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ---------------------------------------------------------------------------
// Response DTOs shared across handlers
// ---------------------------------------------------------------------------

type userResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	DefaultProject *uuid.UUID `json:"default_project_id,omitempty"`
	DefaultTask    *uuid.UUID `json:"default_task_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role.String(),
		Status:         u.Status.String(),
		DefaultProject: u.DefaultProject,
		DefaultTask:    u.DefaultTask,
		CreatedAt:      u.CreatedAt,
	}
}

type sessionResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	TaskID        *uuid.UUID `json:"task_id,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	LastHeartbeat time.Time  `json:"last_heartbeat"`
	Active        bool       `json:"active"`
	Date          string     `json:"date"`
}

func toSessionResponse(s *domain.TimerSession) sessionResponse {
	return sessionResponse{
		ID:            s.ID.String(),
		UserID:        s.UserID.String(),
		ProjectID:     s.ProjectID,
		TaskID:        s.TaskID,
		StartTime:     s.StartTime,
		LastHeartbeat: s.LastHeartbeat,
		Active:        s.Active,
		Date:          s.Date.Format(dateLayout),
	}
}

type entryResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  int64      `json:"duration_secs"`
	EntryType string     `json:"entry_type"`
	Date      string     `json:"date"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toEntryResponse(e *domain.TimeEntry) entryResponse {
	return entryResponse{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		ProjectID: e.ProjectID,
		TaskID:    e.TaskID,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Duration:  e.Duration,
		EntryType: e.EntryType.String(),
		Date:      e.Date.Format(dateLayout),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

func toEntryResponses(entries []*domain.TimeEntry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

type timesheetResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	WeekStart    string     `json:"week_start"`
	WeekEnd      string     `json:"week_end"`
	TotalHours   float64    `json:"total_hours"`
	Status       string     `json:"status"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy   *uuid.UUID `json:"reviewed_by,omitempty"`
	AdminComment *string    `json:"admin_comment,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toTimesheetResponse(ts *domain.Timesheet) timesheetResponse {
	return timesheetResponse{
		ID:           ts.ID.String(),
		UserID:       ts.UserID.String(),
		WeekStart:    ts.WeekStart.Format(dateLayout),
		WeekEnd:      ts.WeekEnd.Format(dateLayout),
		TotalHours:   ts.TotalHours,
		Status:       ts.Status.String(),
		SubmittedAt:  ts.SubmittedAt,
		ReviewedAt:   ts.ReviewedAt,
		ReviewedBy:   ts.ReviewedBy,
		AdminComment: ts.AdminComment,
		UpdatedAt:    ts.UpdatedAt,
	}
}

func toTimesheetResponses(sheets []*domain.Timesheet) []timesheetResponse {
	out := make([]timesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		out = append(out, toTimesheetResponse(ts))
	}
	return out
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.String(),
		CreatedAt:   p.CreatedAt,
	}
}

type taskResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Name:        t.Name,
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt,
	}
}

type notificationResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Read        bool       `json:"read"`
	TimesheetID *uuid.UUID `json:"timesheet_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID.String(),
		Type:        n.Type.String(),
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		TimesheetID: n.TimesheetID,
		CreatedAt:   n.CreatedAt,
	}
}
