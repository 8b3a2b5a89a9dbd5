package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/auth"
	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// CreateUser provisions a new account. Admin-only; a duplicate email fails
// with domain.ErrAlreadyExists.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		Status:       domain.UserStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("admin_id", adminID.String()),
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)

	return created, nil
}

// ListUsers returns all accounts. Admin-only.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// SetUserStatus activates or deactivates an account. Admin-only; admins cannot
// deactivate themselves, so the last admin cannot lock everyone out.
func (s *Service) SetUserStatus(ctx context.Context, input SetStatusInput) (*domain.User, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.UserID == adminID && input.Status == domain.UserStatusInactive {
		return nil, domain.NewValidationError("user_id", "cannot deactivate own account")
	}

	updated, err := s.users.SetStatus(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("set user status: %w", err)
	}

	s.log.InfoContext(ctx, "user status changed",
		slog.String("admin_id", adminID.String()),
		slog.String("user_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}
