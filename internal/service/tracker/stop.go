package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Stop finalizes the caller's running timer into a durable time entry. When
// input names a session it must be the caller's active one; otherwise whatever
// timer is running is stopped. The entry is attributed to the date the timer
// started and the week total refreshes in the same transaction. Timer results
// are recorded even when the target week is already submitted; a frozen sheet
// just keeps its total until unlock.
func (s *Service) Stop(ctx context.Context, input StopInput) (*domain.TimeEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var entry *domain.TimeEntry
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		session, err := s.lookupSession(txCtx, userID, input.SessionID)
		if err != nil {
			return err
		}

		// Deactivate is guarded on active=true, so a concurrent stop or reap
		// loses exactly one of the races.
		if _, err := s.sessions.Deactivate(txCtx, session.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("session already finalized: %w", domain.ErrNotFound)
			}
			return fmt.Errorf("deactivate session: %w", err)
		}

		now := s.clock.Now()
		entry, err = s.finalize(txCtx, session, now, input.Notes)
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "timer stopped",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", entry.ID.String()),
		slog.Int64("duration_secs", entry.Duration),
	)

	return entry, nil
}

// lookupSession resolves the session to stop. A named session must belong to
// the caller and still be active.
func (s *Service) lookupSession(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID) (*domain.TimerSession, error) {
	if sessionID == nil {
		session, err := s.sessions.GetActive(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("no active timer: %w", domain.ErrNotFound)
			}
			return nil, fmt.Errorf("get active session: %w", err)
		}
		return session, nil
	}

	session, err := s.sessions.GetByID(ctx, userID, *sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if !session.Active {
		return nil, fmt.Errorf("session %s already finalized: %w", sessionID, domain.ErrNotFound)
	}
	return session, nil
}

// finalize converts a deactivated session into a timer entry ending at end and
// refreshes the affected week total. Runs inside the caller's transaction.
func (s *Service) finalize(ctx context.Context, session *domain.TimerSession, end time.Time, notes *string) (*domain.TimeEntry, error) {
	entry, err := s.entries.Create(ctx, &domain.TimeEntry{
		ID:        uuid.New(),
		UserID:    session.UserID,
		ProjectID: session.ProjectID,
		TaskID:    session.TaskID,
		StartTime: session.StartTime,
		EndTime:   &end,
		Duration:  domain.DurationSeconds(session.StartTime, end),
		EntryType: domain.EntryTypeTimer,
		Notes:     notes,
		Date:      session.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("create timer entry: %w", err)
	}

	if _, err := s.sheets.RecomputeForDate(ctx, session.UserID, session.Date); err != nil {
		return nil, fmt.Errorf("recompute week total: %w", err)
	}

	return entry, nil
}
