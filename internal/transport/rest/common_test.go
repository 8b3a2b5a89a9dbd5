package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("week_of", "required"), http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict},
		{"conflict", fmt.Errorf("interval overlaps 2 existing entries: %w", domain.ErrConflict), http.StatusConflict},
		{"invalid state", fmt.Errorf("timesheet is not submitted: %w", domain.ErrInvalidState), http.StatusConflict},
		{"locked", fmt.Errorf("week of 2025-03-03: %w", domain.ErrLocked), http.StatusLocked},
		{"unknown", fmt.Errorf("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			handleError(logger, rec, req, tc.err)

			if rec.Code != tc.want {
				t.Errorf("status: got %d, want %d", rec.Code, tc.want)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handleError(logger, rec, req, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("expected generic message, got %q", body["error"])
	}
}

func TestQueryDate(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?date_from=2025-03-03", nil)

	d, err := queryDate(req, "date_from")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.Format(dateLayout) != "2025-03-03" {
		t.Errorf("date: got %v, want 2025-03-03", d)
	}

	missing, err := queryDate(req, "date_to")
	if err != nil || missing != nil {
		t.Errorf("absent key: got (%v, %v), want (nil, nil)", missing, err)
	}

	bad := httptest.NewRequest(http.MethodGet, "/?date_from=03%2F03%2F2025", nil)
	if _, err := queryDate(bad, "date_from"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestQueryInt_Defaults(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=xyz", nil)

	if got := queryInt(req, "limit", 0); got != 25 {
		t.Errorf("limit: got %d, want 25", got)
	}
	if got := queryInt(req, "offset", 7); got != 7 {
		t.Errorf("absent offset: got %d, want default 7", got)
	}
	if got := queryInt(req, "bad", 3); got != 3 {
		t.Errorf("malformed value: got %d, want default 3", got)
	}
}
