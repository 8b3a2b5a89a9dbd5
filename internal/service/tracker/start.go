package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Start opens a new timer session for the caller. At most one session may run
// per user; a second start fails with domain.ErrConflict, enforced by the
// partial unique index rather than a read-then-write check. Without an explicit
// project the caller's profile defaults are applied.
func (s *Service) Start(ctx context.Context, input StartInput) (*domain.TimerSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	projectID, taskID, err := s.resolveTarget(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session, err := s.sessions.Create(ctx, &domain.TimerSession{
		ID:            uuid.New(),
		UserID:        userID,
		ProjectID:     projectID,
		TaskID:        taskID,
		StartTime:     now,
		LastHeartbeat: now,
		Active:        true,
		Date:          s.dateOf(now),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("timer already running: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create timer session: %w", err)
	}

	s.log.InfoContext(ctx, "timer started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
	)

	return session, nil
}

// Active returns the caller's running session, or nil when no timer is running.
func (s *Service) Active(ctx context.Context) (*domain.TimerSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}

	return session, nil
}

// resolveTarget fills project and task from the user's profile defaults when
// absent and verifies both references are active.
func (s *Service) resolveTarget(ctx context.Context, userID uuid.UUID, input StartInput) (*uuid.UUID, *uuid.UUID, error) {
	projectID := input.ProjectID
	taskID := input.TaskID

	if projectID == nil {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("load user defaults: %w", err)
		}
		projectID = user.DefaultProject
		taskID = user.DefaultTask
	}

	if projectID != nil {
		ok, err := s.projects.ExistsActive(ctx, *projectID)
		if err != nil {
			return nil, nil, fmt.Errorf("check project: %w", err)
		}
		if !ok {
			return nil, nil, domain.NewValidationError("project_id", "not found or archived")
		}
	}

	if taskID != nil {
		if projectID == nil {
			return nil, nil, domain.NewValidationError("task_id", "requires project_id")
		}
		ok, err := s.tasks.ExistsActiveInProject(ctx, *taskID, *projectID)
		if err != nil {
			return nil, nil, fmt.Errorf("check task: %w", err)
		}
		if !ok {
			return nil, nil, domain.NewValidationError("task_id", "not found in project or archived")
		}
	}

	return projectID, taskID, nil
}
