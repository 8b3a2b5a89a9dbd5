package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/internal/service/timeentry"
)

var _ entryService = &entryServiceMock{}

type entryServiceMock struct {
	CreateFunc func(ctx context.Context, input timeentry.CreateInput) (*domain.TimeEntry, error)
	UpdateFunc func(ctx context.Context, input timeentry.UpdateInput) (*domain.TimeEntry, error)
	DeleteFunc func(ctx context.Context, input timeentry.DeleteInput) error
	GetFunc    func(ctx context.Context, entryID uuid.UUID) (*domain.TimeEntry, error)
	ListFunc   func(ctx context.Context, input timeentry.ListInput) ([]*domain.TimeEntry, error)
}

func (m *entryServiceMock) Create(ctx context.Context, input timeentry.CreateInput) (*domain.TimeEntry, error) {
	if m.CreateFunc == nil {
		panic("entryServiceMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *entryServiceMock) Update(ctx context.Context, input timeentry.UpdateInput) (*domain.TimeEntry, error) {
	if m.UpdateFunc == nil {
		panic("entryServiceMock.UpdateFunc: method is nil but Update was just called")
	}
	return m.UpdateFunc(ctx, input)
}

func (m *entryServiceMock) Delete(ctx context.Context, input timeentry.DeleteInput) error {
	if m.DeleteFunc == nil {
		panic("entryServiceMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, input)
}

func (m *entryServiceMock) Get(ctx context.Context, entryID uuid.UUID) (*domain.TimeEntry, error) {
	if m.GetFunc == nil {
		panic("entryServiceMock.GetFunc: method is nil but Get was just called")
	}
	return m.GetFunc(ctx, entryID)
}

func (m *entryServiceMock) List(ctx context.Context, input timeentry.ListInput) ([]*domain.TimeEntry, error) {
	if m.ListFunc == nil {
		panic("entryServiceMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, input)
}

func TestEntryCreate_Success(t *testing.T) {
	t.Parallel()

	svc := &entryServiceMock{
		CreateFunc: func(ctx context.Context, input timeentry.CreateInput) (*domain.TimeEntry, error) {
			if input.EndTime == nil {
				t.Error("expected end_time to be decoded")
			}
			return &domain.TimeEntry{
				ID:        uuid.New(),
				UserID:    uuid.New(),
				StartTime: input.StartTime,
				EndTime:   input.EndTime,
				Duration:  7200,
				EntryType: domain.EntryTypeManual,
				Date:      time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	h := NewEntryHandler(svc, testLogger())

	body := `{"start_time":"2025-03-04T09:00:00Z","end_time":"2025-03-04T11:00:00Z","notes":"code review"}`
	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp entryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Duration != 7200 {
		t.Errorf("duration: got %d, want 7200", resp.Duration)
	}
}

func TestEntryCreate_FrozenWeek(t *testing.T) {
	t.Parallel()

	svc := &entryServiceMock{
		CreateFunc: func(ctx context.Context, input timeentry.CreateInput) (*domain.TimeEntry, error) {
			return nil, fmt.Errorf("week of 2025-03-03: %w", domain.ErrLocked)
		},
	}
	h := NewEntryHandler(svc, testLogger())

	body := `{"start_time":"2025-03-04T09:00:00Z","duration_secs":3600}`
	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusLocked {
		t.Errorf("expected status 423, got %d", rec.Code)
	}
}

func TestEntryCreate_MalformedProjectID(t *testing.T) {
	t.Parallel()

	h := NewEntryHandler(&entryServiceMock{}, testLogger())

	body := `{"start_time":"2025-03-04T09:00:00Z","duration_secs":3600,"project_id":"not-a-uuid"}`
	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestEntryDelete_NoContent(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	svc := &entryServiceMock{
		DeleteFunc: func(ctx context.Context, input timeentry.DeleteInput) error {
			if input.EntryID != entryID {
				t.Errorf("entry id: got %v, want %v", input.EntryID, entryID)
			}
			return nil
		},
	}
	h := NewEntryHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/entries/"+entryID.String(), nil)
	req.SetPathValue("id", entryID.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
}

func TestEntryList_FiltersDecoded(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()
	svc := &entryServiceMock{
		ListFunc: func(ctx context.Context, input timeentry.ListInput) ([]*domain.TimeEntry, error) {
			if input.ProjectID == nil || *input.ProjectID != projectID {
				t.Errorf("project filter: got %v, want %v", input.ProjectID, projectID)
			}
			if input.DateFrom == nil || input.DateFrom.Format(dateLayout) != "2025-03-01" {
				t.Errorf("date_from filter: got %v", input.DateFrom)
			}
			if input.Limit != 10 {
				t.Errorf("limit: got %d, want 10", input.Limit)
			}
			return []*domain.TimeEntry{}, nil
		},
	}
	h := NewEntryHandler(svc, testLogger())

	url := "/entries?project_id=" + projectID.String() + "&date_from=2025-03-01&limit=10"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %q", body)
	}
}

func TestEntryList_BadDate(t *testing.T) {
	t.Parallel()

	h := NewEntryHandler(&entryServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/entries?date_from=yesterday", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestEntryUpdate_Overlap(t *testing.T) {
	t.Parallel()

	svc := &entryServiceMock{
		UpdateFunc: func(ctx context.Context, input timeentry.UpdateInput) (*domain.TimeEntry, error) {
			return nil, fmt.Errorf("interval overlaps 1 existing entries: %w", domain.ErrConflict)
		},
	}
	h := NewEntryHandler(svc, testLogger())

	entryID := uuid.New()
	req := httptest.NewRequest(http.MethodPut, "/entries/"+entryID.String(), strings.NewReader(`{"duration_secs":1800}`))
	req.SetPathValue("id", entryID.String())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rec.Code)
	}
}
