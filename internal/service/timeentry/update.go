package timeentry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Update edits a manual entry. Only the owner or an admin may edit; both the
// entry's current week and, when the start moves, the destination week must be
// editable, either unlocked or reopened by an admin unlock-and-edit. Affected
// week totals refresh in the same transaction.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.TimeEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.TimeEntry
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entry, err := s.entries.GetByID(txCtx, input.EntryID)
		if err != nil {
			return fmt.Errorf("get entry: %w", err)
		}
		if entry.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
			return domain.ErrForbidden
		}

		oldDate := entry.Date

		if err := s.ensureEditable(txCtx, entry.UserID, oldDate, input.Unlock); err != nil {
			return err
		}

		next, err := s.applyChanges(txCtx, entry, input)
		if err != nil {
			return err
		}

		if !next.Date.Equal(oldDate) {
			if err := s.ensureEditable(txCtx, next.UserID, next.Date, input.Unlock); err != nil {
				return err
			}
		}

		if err := s.ensureNoOverlap(txCtx, next.UserID, next.StartTime, next.EffectiveEnd(), &next.ID, input.Override); err != nil {
			return err
		}

		updated, err = s.entries.Update(txCtx, next)
		if err != nil {
			return fmt.Errorf("update entry: %w", err)
		}

		if _, err := s.sheets.RecomputeForDate(txCtx, updated.UserID, oldDate); err != nil {
			return fmt.Errorf("recompute week total: %w", err)
		}
		if !updated.Date.Equal(oldDate) {
			if _, err := s.sheets.RecomputeForDate(txCtx, updated.UserID, updated.Date); err != nil {
				return fmt.Errorf("recompute destination week total: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "entry updated",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", updated.ID.String()),
	)

	return updated, nil
}

// applyChanges merges the edit into a copy of the entry and revalidates the
// resulting references and interval.
func (s *Service) applyChanges(ctx context.Context, entry *domain.TimeEntry, input UpdateInput) (*domain.TimeEntry, error) {
	next := *entry

	refsChanged := false
	if input.ProjectID != nil {
		next.ProjectID = input.ProjectID
		refsChanged = true
	}
	if input.TaskID != nil {
		next.TaskID = input.TaskID
		refsChanged = true
	}
	if refsChanged {
		if err := s.checkRefs(ctx, next.ProjectID, next.TaskID); err != nil {
			return nil, err
		}
	}

	if input.StartTime != nil {
		next.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		next.EndTime = input.EndTime
	}
	if input.Notes != nil {
		next.Notes = input.Notes
	}

	if next.EndTime != nil && !next.EndTime.After(next.StartTime) {
		return nil, domain.NewValidationError("end_time", "must be after start_time")
	}

	timingChanged := input.StartTime != nil || input.EndTime != nil || input.DurationSecs != nil
	if timingChanged {
		var provided *int64
		if input.DurationSecs != nil {
			provided = input.DurationSecs
		} else if next.EndTime == nil {
			provided = &next.Duration
		}
		duration, err := s.resolveDuration(next.StartTime, next.EndTime, provided)
		if err != nil {
			return nil, err
		}
		next.Duration = duration
	}

	next.Date = s.dateOf(next.StartTime)

	return &next, nil
}
