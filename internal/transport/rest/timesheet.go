package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/timesheet"
)

// timesheetService defines the minimal interface needed by TimesheetHandler.
type timesheetService interface {
	Get(ctx context.Context, input timesheet.GetInput) (*timesheet.Detail, error)
	List(ctx context.Context, input timesheet.ListInput) ([]*domain.Timesheet, error)
	ListPending(ctx context.Context) ([]*domain.Timesheet, error)
	Submit(ctx context.Context, input timesheet.SubmitInput) (*domain.Timesheet, error)
	Approve(ctx context.Context, input timesheet.ApproveInput) (*domain.Timesheet, error)
	Deny(ctx context.Context, input timesheet.DenyInput) (*domain.Timesheet, error)
	Unsubmit(ctx context.Context, input timesheet.UnsubmitInput) (*domain.Timesheet, error)
}

// TimesheetHandler serves weekly timesheet endpoints.
type TimesheetHandler struct {
	svc timesheetService
	log *slog.Logger
}

// NewTimesheetHandler creates a TimesheetHandler.
func NewTimesheetHandler(svc timesheetService, logger *slog.Logger) *TimesheetHandler {
	return &TimesheetHandler{svc: svc, log: logger.With("handler", "timesheet")}
}

type timesheetDetailResponse struct {
	Timesheet timesheetResponse `json:"timesheet"`
	Entries   []entryResponse   `json:"entries"`
}

// Get handles GET /timesheets/week?week_of=YYYY-MM-DD&user_id=...
// The week containing week_of is returned; user_id is admin-only.
func (h *TimesheetHandler) Get(w http.ResponseWriter, r *http.Request) {
	weekOf := r.URL.Query().Get("week_of")
	if weekOf == "" {
		writeError(w, http.StatusBadRequest, "week_of is required")
		return
	}
	day, err := parseDate(weekOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid week_of")
		return
	}

	input := timesheet.GetInput{WeekOf: day}
	if input.UserID, err = queryUUID(r, "user_id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}

	detail, err := h.svc.Get(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, timesheetDetailResponse{
		Timesheet: toTimesheetResponse(detail.Timesheet),
		Entries:   toEntryResponses(detail.Entries),
	})
}

// List handles GET /timesheets with user_id, limit, and offset query
// parameters. Listing another user's history is admin-only.
func (h *TimesheetHandler) List(w http.ResponseWriter, r *http.Request) {
	input := timesheet.ListInput{
		Limit:  queryInt(r, "limit", 0),
		Offset: queryInt(r, "offset", 0),
	}

	var err error
	if input.UserID, err = queryUUID(r, "user_id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}

	sheets, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimesheetResponses(sheets))
}

// Pending handles GET /timesheets/pending. Admin-only.
func (h *TimesheetHandler) Pending(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.svc.ListPending(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimesheetResponses(sheets))
}

type submitTimesheetRequest struct {
	WeekOf string `json:"week_of"`
}

// Submit handles POST /timesheets/submit.
func (h *TimesheetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitTimesheetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	day, err := parseDate(req.WeekOf)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid week_of")
		return
	}

	ts, err := h.svc.Submit(r.Context(), timesheet.SubmitInput{WeekOf: day})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}

type reviewRequest struct {
	Comment *string `json:"comment"`
}

// Approve handles POST /timesheets/{id}/approve. Admin-only.
func (h *TimesheetHandler) Approve(w http.ResponseWriter, r *http.Request) {
	timesheetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	ts, err := h.svc.Approve(r.Context(), timesheet.ApproveInput{
		TimesheetID: timesheetID,
		Comment:     req.Comment,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}

type denyRequest struct {
	Comment string `json:"comment"`
}

// Deny handles POST /timesheets/{id}/deny. Admin-only; the comment is
// mandatory and the sheet drops straight back to draft.
func (h *TimesheetHandler) Deny(w http.ResponseWriter, r *http.Request) {
	timesheetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req denyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ts, err := h.svc.Deny(r.Context(), timesheet.DenyInput{
		TimesheetID: timesheetID,
		Comment:     req.Comment,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}

// Unsubmit handles POST /timesheets/{id}/unsubmit. Admin-only.
func (h *TimesheetHandler) Unsubmit(w http.ResponseWriter, r *http.Request) {
	timesheetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	ts, err := h.svc.Unsubmit(r.Context(), timesheet.UnsubmitInput{TimesheetID: timesheetID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimesheetResponse(ts))
}
