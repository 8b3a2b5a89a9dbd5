package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/service/report"
)

// reportService defines the minimal interface needed by ReportHandler.
type reportService interface {
	Summary(ctx context.Context, input report.SummaryInput) (*report.Summary, error)
}

// ReportHandler serves aggregated reporting endpoints.
type ReportHandler struct {
	svc reportService
	log *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report")}
}

type reportProjectResponse struct {
	ProjectID   *uuid.UUID `json:"project_id"`
	ProjectName *string    `json:"project_name"`
	EntryCount  int64      `json:"entries_count"`
	TotalSecs   int64      `json:"duration_secs"`
}

type reportResponse struct {
	DateFrom     string                  `json:"date_from"`
	DateTo       string                  `json:"date_to"`
	TotalSecs    int64                   `json:"total_duration_secs"`
	TotalHours   float64                 `json:"total_hours"`
	TotalEntries int64                   `json:"total_entries"`
	Projects     []reportProjectResponse `json:"projects"`
}

// Summary handles GET /reports?date_from=&date_to=&user_id=.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	input := report.SummaryInput{}

	var err error
	if input.UserID, err = queryUUID(r, "user_id"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
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

	summary, err := h.svc.Summary(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	projects := make([]reportProjectResponse, 0, len(summary.Projects))
	for _, p := range summary.Projects {
		projects = append(projects, reportProjectResponse{
			ProjectID:   p.ProjectID,
			ProjectName: p.ProjectName,
			EntryCount:  p.EntryCount,
			TotalSecs:   p.TotalSecs,
		})
	}

	writeJSON(w, http.StatusOK, reportResponse{
		DateFrom:     summary.DateFrom.Format(dateLayout),
		DateTo:       summary.DateTo.Format(dateLayout),
		TotalSecs:    summary.TotalSecs,
		TotalHours:   summary.TotalHours,
		TotalEntries: summary.TotalEntries,
		Projects:     projects,
	})
}
