package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// ReapStale finalizes sessions whose heartbeat went silent for longer than the
// staleness threshold. The recorded interval ends at the last heartbeat, not at
// reap time, so a crashed client is not credited for the gap. Each session is
// finalized in its own transaction; one broken session does not block the rest.
// Returns the number of sessions reaped.
func (s *Service) ReapStale(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.staleness)

	stale, err := s.sessions.ListStale(ctx, cutoff, s.reapBatch)
	if err != nil {
		return 0, fmt.Errorf("list stale sessions: %w", err)
	}

	reaped := 0
	for _, session := range stale {
		if err := s.reapOne(ctx, session); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Stopped or reaped concurrently, nothing left to do.
				continue
			}
			s.log.ErrorContext(ctx, "reap session failed",
				slog.String("session_id", session.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		reaped++
	}

	if reaped > 0 {
		s.log.InfoContext(ctx, "stale sessions reaped", slog.Int("count", reaped))
	}

	return reaped, nil
}

func (s *Service) reapOne(ctx context.Context, session *domain.TimerSession) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.sessions.Deactivate(txCtx, session.ID); err != nil {
			return fmt.Errorf("deactivate session: %w", err)
		}

		entry, err := s.finalize(txCtx, session, session.LastHeartbeat, nil)
		if err != nil {
			return err
		}

		s.log.WarnContext(txCtx, "abandoned timer finalized",
			slog.String("user_id", session.UserID.String()),
			slog.String("session_id", session.ID.String()),
			slog.String("entry_id", entry.ID.String()),
			slog.Int64("duration_secs", entry.Duration),
		)

		return nil
	})
}
