package timeentry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Create records a manual time entry for the caller. The target week must not
// be submitted or approved, and the interval must not overlap an existing
// entry unless an admin sets Override. The week total refreshes in the same
// transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.TimeEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkRefs(ctx, input.ProjectID, input.TaskID); err != nil {
		return nil, err
	}

	duration, err := s.resolveDuration(input.StartTime, input.EndTime, input.DurationSecs)
	if err != nil {
		return nil, err
	}

	date := s.dateOf(input.StartTime)

	var entry *domain.TimeEntry
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ensureUnlocked(txCtx, userID, date); err != nil {
			return err
		}

		if err := s.ensureNoOverlap(txCtx, userID, input.StartTime, effectiveEnd(input.StartTime, input.EndTime, duration), nil, input.Override); err != nil {
			return err
		}

		entry, err = s.entries.Create(txCtx, &domain.TimeEntry{
			ID:        uuid.New(),
			UserID:    userID,
			ProjectID: input.ProjectID,
			TaskID:    input.TaskID,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			Duration:  duration,
			EntryType: domain.EntryTypeManual,
			Date:      date,
			Notes:     input.Notes,
		})
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}

		if _, err := s.sheets.RecomputeForDate(txCtx, userID, date); err != nil {
			return fmt.Errorf("recompute week total: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", entry.ID.String()),
		slog.Int64("duration_secs", entry.Duration),
	)

	return entry, nil
}

// resolveDuration derives the entry duration from the interval, or takes the
// provided one when no end time exists. A duration contradicting the interval
// beyond the tolerance is rejected.
func (s *Service) resolveDuration(start time.Time, end *time.Time, provided *int64) (int64, error) {
	if end == nil {
		return *provided, nil
	}

	computed := domain.DurationSeconds(start, *end)
	if provided != nil {
		diff := *provided - computed
		if diff < 0 {
			diff = -diff
		}
		if diff > int64(s.tolerance/time.Second) {
			return 0, domain.NewValidationError("duration_secs", "does not match start and end times")
		}
	}

	return computed, nil
}

// ensureUnlocked rejects writes into a submitted or approved week.
func (s *Service) ensureUnlocked(ctx context.Context, userID uuid.UUID, date time.Time) error {
	frozen, err := s.sheets.IsWeekFrozen(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("check week state: %w", err)
	}
	if frozen {
		return fmt.Errorf("week of %s: %w", date.Format("2006-01-02"), domain.ErrLocked)
	}
	return nil
}

// ensureEditable is ensureUnlocked plus the admin unlock-and-edit escape
// hatch: an admin passing unlock reopens the frozen week's timesheet to draft
// inside the current transaction instead of failing with ErrLocked.
func (s *Service) ensureEditable(ctx context.Context, userID uuid.UUID, date time.Time, unlock bool) error {
	frozen, err := s.sheets.IsWeekFrozen(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("check week state: %w", err)
	}
	if !frozen {
		return nil
	}

	if !unlock || !ctxutil.IsAdminCtx(ctx) {
		return fmt.Errorf("week of %s: %w", date.Format("2006-01-02"), domain.ErrLocked)
	}

	if _, err := s.sheets.ReopenWeek(ctx, userID, date); err != nil {
		return fmt.Errorf("reopen week: %w", err)
	}

	return nil
}

// ensureNoOverlap rejects intervals intersecting an existing entry. Admins may
// override.
func (s *Service) ensureNoOverlap(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID, override bool) error {
	overlapping, err := s.entries.ListOverlapping(ctx, userID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if len(overlapping) == 0 {
		return nil
	}
	if override && ctxutil.IsAdminCtx(ctx) {
		return nil
	}
	return fmt.Errorf("interval overlaps %d existing entries: %w", len(overlapping), domain.ErrConflict)
}

// effectiveEnd resolves the exclusive end of an interval with an optional end
// time.
func effectiveEnd(start time.Time, end *time.Time, duration int64) time.Time {
	if end != nil {
		return *end
	}
	return start.Add(time.Duration(duration) * time.Second)
}
