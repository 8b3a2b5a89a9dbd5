// Package notification stores and serves per-user notifications produced by
// timesheet state transitions.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Service implements notification delivery and the read-state operations.
type Service struct {
	repo notificationRepo
	log  *slog.Logger
}

// NewService creates a new Notification service.
func NewService(log *slog.Logger, repo notificationRepo) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "notification"),
	}
}

// Emit stores a notification for the given user. Called by the timesheet
// service on submit, approve, and deny; not exposed over the API.
func (s *Service) Emit(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType, title, message string, timesheetID uuid.UUID) (*domain.Notification, error) {
	if !ntype.IsValid() {
		return nil, domain.NewValidationError("type", "unknown notification type")
	}

	var tsRef *uuid.UUID
	if timesheetID != uuid.Nil {
		tsRef = &timesheetID
	}

	created, err := s.repo.Create(ctx, &domain.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		TimesheetID: tsRef,
	})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return created, nil
}

// List returns the caller's notifications, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	items, err := s.repo.ListByUser(ctx, userID, input.UnreadOnly, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return items, nil
}

// UnreadCount returns how many of the caller's notifications are unread.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	return count, nil
}

// MarkRead flags one of the caller's notifications as read. Marking an already
// read notification is a no-op that returns the current row.
func (s *Service) MarkRead(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if notificationID == uuid.Nil {
		return nil, domain.NewValidationError("notification_id", "required")
	}

	n, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}

	return n, nil
}

// MarkAllRead flags every unread notification of the caller as read and
// returns how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	changed, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	if changed > 0 {
		s.log.InfoContext(ctx, "notifications marked read",
			slog.String("user_id", userID.String()),
			slog.Int64("count", changed),
		)
	}

	return changed, nil
}
