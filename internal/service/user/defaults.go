package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// UpdateDefaults replaces the caller's default tracking target, used when a
// timer starts without an explicit project. Nil values clear the defaults.
func (s *Service) UpdateDefaults(ctx context.Context, input UpdateDefaultsInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		ok, err := s.projects.ExistsActive(ctx, *input.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("check project: %w", err)
		}
		if !ok {
			return nil, domain.NewValidationError("project_id", "not found or archived")
		}
	}

	if input.TaskID != nil {
		ok, err := s.tasks.ExistsActiveInProject(ctx, *input.TaskID, *input.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("check task: %w", err)
		}
		if !ok {
			return nil, domain.NewValidationError("task_id", "not found in project or archived")
		}
	}

	updated, err := s.users.UpdateDefaults(ctx, userID, input.ProjectID, input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("update defaults: %w", err)
	}

	s.log.InfoContext(ctx, "tracking defaults updated", slog.String("user_id", userID.String()))

	return updated, nil
}
