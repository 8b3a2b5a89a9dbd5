package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// RecomputeForDate refreshes total_hours of the timesheet covering day.
// The row is created lazily if the week was never touched. Frozen sheets keep
// the total they were submitted with; their figures refresh on unlock or the
// next submission.
//
// Callers that need atomicity with entry writes run this inside their own
// transaction; the repo picks the transaction up from the context.
func (s *Service) RecomputeForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error) {
	week := s.weekOf(day)

	ts, err := s.sheets.GetOrCreate(ctx, userID, week, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("get or create timesheet: %w", err)
	}

	if ts.Status.IsFrozen() {
		return ts, nil
	}

	total, err := s.entries.SumDuration(ctx, userID, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("sum week durations: %w", err)
	}

	updated, err := s.sheets.SetTotal(ctx, ts.ID, domain.HoursFromSeconds(total), s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("store week total: %w", err)
	}

	return updated, nil
}

// ReopenWeek flips the frozen timesheet covering day back to draft so the
// caller can edit the week's entries. It is the in-transaction arm of the
// admin unlock-and-edit cascade: entry services call it inside their own
// transaction, and the repo picks that transaction up from the context.
// Reopening an already editable or missing week is a no-op.
func (s *Service) ReopenWeek(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	week := s.weekOf(day)

	ts, err := s.sheets.GetByUserWeekForUpdate(ctx, userID, week.Start)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock timesheet: %w", err)
	}

	if !ts.Status.IsFrozen() {
		return ts, nil
	}

	reopened, err := s.sheets.Unsubmit(ctx, ts.ID, adminID, s.clock.Now())
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("timesheet %s: %w", ts.ID, domain.ErrInvalidState)
		}
		return nil, fmt.Errorf("reopen timesheet: %w", err)
	}

	s.log.InfoContext(ctx, "week reopened for edit",
		slog.String("admin_id", adminID.String()),
		slog.String("timesheet_id", reopened.ID.String()),
	)

	return reopened, nil
}

// IsWeekFrozen reports whether the week covering day is submitted or approved
// for the given user. Weeks without a timesheet row are never frozen.
func (s *Service) IsWeekFrozen(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	week := s.weekOf(day)

	ts, err := s.sheets.GetByUserWeek(ctx, userID, week.Start)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("get timesheet: %w", err)
	}

	return ts.Status.IsFrozen(), nil
}
