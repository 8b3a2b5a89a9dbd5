package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Heartbeat marks the caller's session as still alive. A heartbeat for a
// session that was stopped or reaped in the meantime fails with
// domain.ErrNotFound, telling the client its timer no longer runs.
func (s *Service) Heartbeat(ctx context.Context, input HeartbeatInput) (*domain.TimerSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.Heartbeat(ctx, userID, input.SessionID, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("session %s is not active: %w", input.SessionID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("heartbeat session: %w", err)
	}

	return session, nil
}
