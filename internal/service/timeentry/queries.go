package timeentry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

const defaultListLimit = 50

// Get returns a single entry. Non-admins only see their own.
func (s *Service) Get(ctx context.Context, entryID uuid.UUID) (*domain.TimeEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if entryID == uuid.Nil {
		return nil, domain.NewValidationError("entry_id", "required")
	}

	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if entry.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	return entry, nil
}

// List returns entries ordered by start time. Non-admins are always scoped to
// their own entries; admins may filter by any user or list across users.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.TimeEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	filterUser := input.UserID
	if !ctxutil.IsAdminCtx(ctx) {
		if filterUser != nil && *filterUser != userID {
			return nil, domain.ErrForbidden
		}
		filterUser = &userID
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	entries, err := s.entries.List(ctx, domain.EntryFilter{
		UserID:    filterUser,
		ProjectID: input.ProjectID,
		TaskID:    input.TaskID,
		DateFrom:  input.DateFrom,
		DateTo:    input.DateTo,
		Limit:     limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}
