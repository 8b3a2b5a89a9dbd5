package timesheet

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// testNow is a Wednesday; its week runs 2025-03-03 (Monday) through 2025-03-09.
var (
	testNow       = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	testWeekStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	testWeekEnd   = time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T, sheets *timesheetRepoMock, entries *entryRepoMock, users *userRepoMock, notify *notifierMock) *Service {
	t.Helper()
	return &Service{
		sheets:  sheets,
		entries: entries,
		users:   users,
		notify:  notify,
		tx:      nopTx{},
		clock:   clockwork.NewFakeClockAt(testNow),
		log:     slog.Default(),
	}
}

func draftSheet(userID uuid.UUID) *domain.Timesheet {
	return &domain.Timesheet{
		ID:        uuid.New(),
		UserID:    userID,
		WeekStart: testWeekStart,
		WeekEnd:   testWeekEnd,
		Status:    domain.TimesheetStatusDraft,
		Version:   1,
	}
}

func submittedSheet(userID uuid.UUID) *domain.Timesheet {
	ts := draftSheet(userID)
	ts.Status = domain.TimesheetStatusSubmitted
	submittedAt := testNow.Add(-time.Hour)
	ts.SubmittedAt = &submittedAt
	ts.TotalHours = 7.5
	return ts
}

func adminCtx(adminID uuid.UUID) context.Context {
	ctx := ctxutil.WithUserID(context.Background(), adminID)
	return ctxutil.WithRole(ctx, domain.RoleAdmin)
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := draftSheet(userID)
	emits := 0

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			if !week.Start.Equal(testWeekStart) {
				t.Errorf("week start: got %v, want %v", week.Start, testWeekStart)
			}
			if !week.End.Equal(testWeekEnd) {
				t.Errorf("week end: got %v, want %v", week.End, testWeekEnd)
			}
			return ts, nil
		},
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
		SubmitFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			if totalHours != 7.5 {
				t.Errorf("total hours: got %v, want 7.5", totalHours)
			}
			out := *ts
			out.Status = domain.TimesheetStatusSubmitted
			out.TotalHours = totalHours
			out.SubmittedAt = &now
			return &out, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 27000, nil // 7.5 h
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Alice"}, nil
		},
		ListByRoleFunc: func(ctx context.Context, role domain.Role) ([]*domain.User, error) {
			if role != domain.RoleAdmin {
				t.Errorf("role: got %v, want admin", role)
			}
			return []*domain.User{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		},
	}
	notify := &notifierMock{
		EmitFunc: func(ctx context.Context, uid uuid.UUID, ntype domain.NotificationType, title, message string, tsID uuid.UUID) (*domain.Notification, error) {
			emits++
			if ntype != domain.NotificationTimesheetSubmitted {
				t.Errorf("notification type: got %v, want submitted", ntype)
			}
			return &domain.Notification{ID: uuid.New()}, nil
		},
	}

	svc := newTestService(t, sheets, entries, users, notify)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	result, err := svc.Submit(ctx, SubmitInput{WeekOf: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.TimesheetStatusSubmitted {
		t.Errorf("status: got %v, want submitted", result.Status)
	}
	if result.TotalHours != 7.5 {
		t.Errorf("total hours: got %v, want 7.5", result.TotalHours)
	}
	if emits != 2 {
		t.Errorf("admin notifications: got %d, want 2", emits)
	}
}

func TestSubmit_AlreadySubmitted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := submittedSheet(userID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.Submit(ctx, SubmitInput{WeekOf: testNow})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("error: got %v, want ErrInvalidState", err)
	}
}

func TestSubmit_LostRace(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := draftSheet(userID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
		SubmitFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			// Guard predicate matched no row: someone changed the status first.
			return nil, domain.ErrNotFound
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 3600, nil
		},
	}

	svc := newTestService(t, sheets, entries, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.Submit(ctx, SubmitInput{WeekOf: testNow})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("error: got %v, want ErrInvalidState", err)
	}
}

func TestSubmit_EmptyWeekRejected(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := draftSheet(userID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 0, nil
		},
	}

	svc := newTestService(t, sheets, entries, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	_, err := svc.Submit(ctx, SubmitInput{WeekOf: testNow})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error: got %v, want ValidationError", err)
	}
}

func TestSubmit_NotifyFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := draftSheet(userID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
		SubmitFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			out := *ts
			out.Status = domain.TimesheetStatusSubmitted
			return &out, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 3600, nil
		},
	}
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Alice"}, nil
		},
		ListByRoleFunc: func(ctx context.Context, role domain.Role) ([]*domain.User, error) {
			return []*domain.User{{ID: uuid.New()}}, nil
		},
	}
	notify := &notifierMock{
		EmitFunc: func(ctx context.Context, uid uuid.UUID, ntype domain.NotificationType, title, message string, tsID uuid.UUID) (*domain.Notification, error) {
			return nil, errors.New("notification store down")
		},
	}

	svc := newTestService(t, sheets, entries, users, notify)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if _, err := svc.Submit(ctx, SubmitInput{WeekOf: testNow}); err != nil {
		t.Fatalf("submit should survive notification failure, got: %v", err)
	}
}

func TestSubmit_MissingWeek(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.Submit(ctx, SubmitInput{})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Errors[0].Field != "week_of" {
		t.Errorf("field: got %q, want %q", ve.Errors[0].Field, "week_of")
	}
}

func TestSubmit_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	_, err := svc.Submit(context.Background(), SubmitInput{WeekOf: testNow})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("error: got %v, want ErrUnauthorized", err)
	}
}

// ---------------------------------------------------------------------------
// Approve / Deny
// ---------------------------------------------------------------------------

func TestApprove_Success(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	ownerID := uuid.New()
	ts := submittedSheet(ownerID)
	ownerNotified := false

	sheets := &timesheetRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
		ReviewFunc: func(ctx context.Context, id uuid.UUID, status domain.TimesheetStatus, reviewerID uuid.UUID, comment *string, submittedAt *time.Time, now time.Time) (*domain.Timesheet, error) {
			if status != domain.TimesheetStatusApproved {
				t.Errorf("status: got %v, want approved", status)
			}
			if reviewerID != adminID {
				t.Errorf("reviewer: got %v, want %v", reviewerID, adminID)
			}
			if submittedAt == nil || !submittedAt.Equal(*ts.SubmittedAt) {
				t.Errorf("submitted_at should be preserved on approval, got %v", submittedAt)
			}
			out := *ts
			out.Status = status
			out.ReviewedBy = &reviewerID
			out.ReviewedAt = &now
			return &out, nil
		},
	}
	notify := &notifierMock{
		EmitFunc: func(ctx context.Context, uid uuid.UUID, ntype domain.NotificationType, title, message string, tsID uuid.UUID) (*domain.Notification, error) {
			ownerNotified = true
			if uid != ownerID {
				t.Errorf("notified user: got %v, want owner %v", uid, ownerID)
			}
			if ntype != domain.NotificationTimesheetApproved {
				t.Errorf("notification type: got %v, want approved", ntype)
			}
			return &domain.Notification{ID: uuid.New()}, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, notify)

	result, err := svc.Approve(adminCtx(adminID), ApproveInput{TimesheetID: ts.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.TimesheetStatusApproved {
		t.Errorf("status: got %v, want approved", result.Status)
	}
	if !ownerNotified {
		t.Error("owner was not notified")
	}
}

func TestApprove_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.Approve(ctx, ApproveInput{TimesheetID: uuid.New()})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error: got %v, want ErrForbidden", err)
	}
}

func TestApprove_NotSubmitted(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	ts := draftSheet(uuid.New())

	sheets := &timesheetRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	_, err := svc.Approve(adminCtx(adminID), ApproveInput{TimesheetID: ts.ID})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("error: got %v, want ErrInvalidState", err)
	}
}

func TestDeny_Success(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	ownerID := uuid.New()
	ts := submittedSheet(ownerID)

	sheets := &timesheetRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
		ReviewFunc: func(ctx context.Context, id uuid.UUID, status domain.TimesheetStatus, reviewerID uuid.UUID, comment *string, submittedAt *time.Time, now time.Time) (*domain.Timesheet, error) {
			if status != domain.TimesheetStatusDraft {
				t.Errorf("status: got %v, want draft (deny resets immediately)", status)
			}
			if comment == nil || *comment != "missing Friday hours" {
				t.Errorf("comment: got %v, want denial reason", comment)
			}
			if submittedAt != nil {
				t.Errorf("submitted_at should be cleared on denial, got %v", submittedAt)
			}
			out := *ts
			out.Status = status
			out.SubmittedAt = nil
			out.AdminComment = comment
			return &out, nil
		},
	}
	notify := &notifierMock{
		EmitFunc: func(ctx context.Context, uid uuid.UUID, ntype domain.NotificationType, title, message string, tsID uuid.UUID) (*domain.Notification, error) {
			if ntype != domain.NotificationTimesheetDenied {
				t.Errorf("notification type: got %v, want denied", ntype)
			}
			return &domain.Notification{ID: uuid.New()}, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, notify)

	result, err := svc.Deny(adminCtx(adminID), DenyInput{TimesheetID: ts.ID, Comment: "missing Friday hours"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.TimesheetStatusDraft {
		t.Errorf("status: got %v, want draft", result.Status)
	}
}

func TestDeny_EmptyComment(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	_, err := svc.Deny(adminCtx(uuid.New()), DenyInput{TimesheetID: uuid.New(), Comment: "   "})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Errors[0].Field != "comment" {
		t.Errorf("field: got %q, want %q", ve.Errors[0].Field, "comment")
	}
}

// ---------------------------------------------------------------------------
// Unsubmit
// ---------------------------------------------------------------------------

func TestUnsubmit_Success(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	ownerID := uuid.New()
	ts := submittedSheet(ownerID)
	recomputed := false

	sheets := &timesheetRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
		UnsubmitFunc: func(ctx context.Context, id uuid.UUID, aid uuid.UUID, now time.Time) (*domain.Timesheet, error) {
			if aid != adminID {
				t.Errorf("admin: got %v, want %v", aid, adminID)
			}
			out := *ts
			out.Status = domain.TimesheetStatusDraft
			out.SubmittedAt = nil
			return &out, nil
		},
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			out := *ts
			out.Status = domain.TimesheetStatusDraft
			return &out, nil
		},
		SetTotalFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			recomputed = true
			if totalHours != 2.25 {
				t.Errorf("recomputed hours: got %v, want 2.25", totalHours)
			}
			out := *ts
			out.Status = domain.TimesheetStatusDraft
			out.TotalHours = totalHours
			return &out, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 8100, nil // 2.25 h
		},
	}

	svc := newTestService(t, sheets, entries, &userRepoMock{}, &notifierMock{})

	result, err := svc.Unsubmit(adminCtx(adminID), UnsubmitInput{TimesheetID: ts.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.TimesheetStatusDraft {
		t.Errorf("status: got %v, want draft", result.Status)
	}
	if !recomputed {
		t.Error("total was not recomputed after unlock")
	}
}

func TestUnsubmit_NotFrozen(t *testing.T) {
	t.Parallel()

	ts := draftSheet(uuid.New())
	sheets := &timesheetRepoMock{
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			return ts, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	_, err := svc.Unsubmit(adminCtx(uuid.New()), UnsubmitInput{TimesheetID: ts.ID})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("error: got %v, want ErrInvalidState", err)
	}
}

// ---------------------------------------------------------------------------
// RecomputeForDate / IsWeekFrozen
// ---------------------------------------------------------------------------

func TestRecomputeForDate_UpdatesTotal(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := draftSheet(userID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
		SetTotalFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			if totalHours != 1.5 {
				t.Errorf("total hours: got %v, want 1.5", totalHours)
			}
			out := *ts
			out.TotalHours = totalHours
			return &out, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 5400, nil
		},
	}

	svc := newTestService(t, sheets, entries, &userRepoMock{}, &notifierMock{})

	result, err := svc.RecomputeForDate(context.Background(), userID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 1.5 {
		t.Errorf("total hours: got %v, want 1.5", result.TotalHours)
	}
}

func TestRecomputeForDate_FrozenSheetKeepsTotal(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := submittedSheet(userID)

	// SetTotalFunc left nil on purpose: touching a frozen sheet must panic the test.
	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	result, err := svc.RecomputeForDate(context.Background(), userID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 7.5 {
		t.Errorf("total hours: got %v, want submitted total 7.5", result.TotalHours)
	}
}

func TestReopenWeek_UnsubmitsFrozenSheet(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	ownerID := uuid.New()
	ts := submittedSheet(ownerID)
	locked := false

	sheets := &timesheetRepoMock{
		GetByUserWeekForUpdateFunc: func(ctx context.Context, uid uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
			if uid != ownerID {
				t.Errorf("lock user: got %v, want owner %v", uid, ownerID)
			}
			if !weekStart.Equal(testWeekStart) {
				t.Errorf("lock week: got %v, want %v", weekStart, testWeekStart)
			}
			locked = true
			return ts, nil
		},
		UnsubmitFunc: func(ctx context.Context, id uuid.UUID, aid uuid.UUID, now time.Time) (*domain.Timesheet, error) {
			if aid != adminID {
				t.Errorf("admin: got %v, want %v", aid, adminID)
			}
			out := *ts
			out.Status = domain.TimesheetStatusDraft
			out.SubmittedAt = nil
			return &out, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	result, err := svc.ReopenWeek(adminCtx(adminID), ownerID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !locked {
		t.Error("sheet row was not locked before reopening")
	}
	if result.Status != domain.TimesheetStatusDraft {
		t.Errorf("status: got %v, want draft", result.Status)
	}
}

func TestReopenWeek_AlreadyEditable(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	ts := draftSheet(ownerID)

	// UnsubmitFunc left nil on purpose: reopening a draft must not touch it.
	sheets := &timesheetRepoMock{
		GetByUserWeekForUpdateFunc: func(ctx context.Context, uid uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	result, err := svc.ReopenWeek(adminCtx(uuid.New()), ownerID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != ts.ID {
		t.Errorf("sheet: got %v, want %v", result.ID, ts.ID)
	}
}

func TestReopenWeek_MissingWeekIsNoop(t *testing.T) {
	t.Parallel()

	sheets := &timesheetRepoMock{
		GetByUserWeekForUpdateFunc: func(ctx context.Context, uid uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	result, err := svc.ReopenWeek(adminCtx(uuid.New()), uuid.New(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("result: got %v, want nil", result)
	}
}

func TestReopenWeek_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.ReopenWeek(ctx, uuid.New(), testNow)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error: got %v, want ErrForbidden", err)
	}
}

func TestIsWeekFrozen_NoTimesheetRow(t *testing.T) {
	t.Parallel()

	sheets := &timesheetRepoMock{
		GetByUserWeekFunc: func(ctx context.Context, uid uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	frozen, err := svc.IsWeekFrozen(context.Background(), uuid.New(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frozen {
		t.Error("week without a timesheet row should not be frozen")
	}
}

func TestIsWeekFrozen_Approved(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := submittedSheet(userID)
	ts.Status = domain.TimesheetStatusApproved

	sheets := &timesheetRepoMock{
		GetByUserWeekFunc: func(ctx context.Context, uid uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
			if !weekStart.Equal(testWeekStart) {
				t.Errorf("week start: got %v, want %v", weekStart, testWeekStart)
			}
			return ts, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	frozen, err := svc.IsWeekFrozen(context.Background(), userID, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frozen {
		t.Error("approved week should be frozen")
	}
}

// ---------------------------------------------------------------------------
// Get / List / ListPending
// ---------------------------------------------------------------------------

func TestGet_OwnWeek(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ts := draftSheet(userID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			if uid != userID {
				t.Errorf("userID: got %v, want %v", uid, userID)
			}
			return ts, nil
		},
		SetTotalFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			out := *ts
			out.TotalHours = totalHours
			return &out, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 3600, nil
		},
		ListForWeekFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*domain.TimeEntry, error) {
			return []*domain.TimeEntry{{ID: uuid.New(), UserID: uid}}, nil
		},
	}

	svc := newTestService(t, sheets, entries, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	detail, err := svc.Get(ctx, GetInput{WeekOf: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Timesheet.TotalHours != 1.0 {
		t.Errorf("total hours: got %v, want 1.0", detail.Timesheet.TotalHours)
	}
	if len(detail.Entries) != 1 {
		t.Errorf("entries: got %d, want 1", len(detail.Entries))
	}
}

func TestGet_OtherUserRequiresAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	otherID := uuid.New()
	_, err := svc.Get(ctx, GetInput{WeekOf: testNow, UserID: &otherID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error: got %v, want ErrForbidden", err)
	}
}

func TestGet_AdminViewsOtherUser(t *testing.T) {
	t.Parallel()

	targetID := uuid.New()
	ts := draftSheet(targetID)

	sheets := &timesheetRepoMock{
		GetOrCreateFunc: func(ctx context.Context, uid uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
			if uid != targetID {
				t.Errorf("userID: got %v, want target %v", uid, targetID)
			}
			return ts, nil
		},
		SetTotalFunc: func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
			return ts, nil
		},
	}
	entries := &entryRepoMock{
		SumDurationFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) (int64, error) {
			return 0, nil
		},
		ListForWeekFunc: func(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*domain.TimeEntry, error) {
			if uid != targetID {
				t.Errorf("entries userID: got %v, want target %v", uid, targetID)
			}
			return nil, nil
		},
	}

	svc := newTestService(t, sheets, entries, &userRepoMock{}, &notifierMock{})

	if _, err := svc.Get(adminCtx(uuid.New()), GetInput{WeekOf: testNow, UserID: &targetID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestList_DefaultLimit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sheets := &timesheetRepoMock{
		ListByUserFunc: func(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*domain.Timesheet, error) {
			if limit != defaultListLimit {
				t.Errorf("limit: got %d, want %d", limit, defaultListLimit)
			}
			return nil, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), userID)

	if _, err := svc.List(ctx, ListInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestList_OtherUserRequiresAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	otherID := uuid.New()
	_, err := svc.List(ctx, ListInput{UserID: &otherID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error: got %v, want ErrForbidden", err)
	}
}

func TestListPending_Success(t *testing.T) {
	t.Parallel()

	sheets := &timesheetRepoMock{
		ListByStatusFunc: func(ctx context.Context, status domain.TimesheetStatus) ([]*domain.Timesheet, error) {
			if status != domain.TimesheetStatusSubmitted {
				t.Errorf("status: got %v, want submitted", status)
			}
			return []*domain.Timesheet{submittedSheet(uuid.New())}, nil
		},
	}

	svc := newTestService(t, sheets, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})

	result, err := svc.ListPending(adminCtx(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("pending: got %d, want 1", len(result))
	}
}

func TestListPending_NotAdmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &timesheetRepoMock{}, &entryRepoMock{}, &userRepoMock{}, &notifierMock{})
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.ListPending(ctx)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("error: got %v, want ErrForbidden", err)
	}
}
