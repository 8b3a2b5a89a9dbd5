package timesheet

import (
	"context"
	"fmt"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

const defaultListLimit = 50

// Detail is a timesheet together with the entries of its week.
type Detail struct {
	Timesheet *domain.Timesheet
	Entries   []*domain.TimeEntry
}

// Get returns the timesheet covering the requested week plus its entries.
// The row is created lazily and, while still editable, its total is refreshed
// so the caller always sees the current sum. Admins may pass UserID to inspect
// another user's week; non-admins get domain.ErrForbidden for that.
func (s *Service) Get(ctx context.Context, input GetInput) (*Detail, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	targetID := callerID
	if input.UserID != nil && *input.UserID != callerID {
		if !ctxutil.IsAdminCtx(ctx) {
			return nil, domain.ErrForbidden
		}
		targetID = *input.UserID
	}

	week := s.weekOf(input.WeekOf)

	ts, err := s.RecomputeForDate(ctx, targetID, week.Start)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListForWeek(ctx, targetID, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("list week entries: %w", err)
	}

	return &Detail{Timesheet: ts, Entries: entries}, nil
}

// List returns a user's timesheet history, newest week first. Admins may pass
// UserID to read another user's history.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Timesheet, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	targetID := callerID
	if input.UserID != nil && *input.UserID != callerID {
		if !ctxutil.IsAdminCtx(ctx) {
			return nil, domain.ErrForbidden
		}
		targetID = *input.UserID
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	sheets, err := s.sheets.ListByUser(ctx, targetID, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}

	return sheets, nil
}

// ListPending returns all submitted timesheets awaiting review, oldest
// submission first. Admin-only.
func (s *Service) ListPending(ctx context.Context) ([]*domain.Timesheet, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	sheets, err := s.sheets.ListByStatus(ctx, domain.TimesheetStatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("list pending timesheets: %w", err)
	}

	return sheets, nil
}
