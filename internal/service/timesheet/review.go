package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Approve finalizes a submitted timesheet. Only admins may approve, and only
// while the sheet is still submitted; a concurrent deny or unsubmit makes the
// transition fail with domain.ErrInvalidState.
func (s *Service) Approve(ctx context.Context, input ApproveInput) (*domain.Timesheet, error) {
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

	var approved *domain.Timesheet
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ts, err := s.sheets.GetByIDForUpdate(txCtx, input.TimesheetID)
		if err != nil {
			return fmt.Errorf("lock timesheet: %w", err)
		}

		if ts.Status != domain.TimesheetStatusSubmitted {
			return fmt.Errorf("timesheet %s is %s, not submitted: %w", ts.ID, ts.Status, domain.ErrInvalidState)
		}

		approved, err = s.sheets.Review(txCtx, ts.ID, domain.TimesheetStatusApproved,
			adminID, input.Comment, ts.SubmittedAt, s.clock.Now())
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("timesheet %s: %w", ts.ID, domain.ErrInvalidState)
			}
			return fmt.Errorf("approve timesheet: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "timesheet approved",
		slog.String("admin_id", adminID.String()),
		slog.String("timesheet_id", approved.ID.String()),
	)

	message := fmt.Sprintf("Your timesheet for the week of %s was approved.", approved.WeekStart.Format("2006-01-02"))
	if input.Comment != nil && *input.Comment != "" {
		message += " Comment: " + *input.Comment
	}
	s.notifyOwner(ctx, approved, domain.NotificationTimesheetApproved, "Timesheet approved", message)

	return approved, nil
}

// Deny rejects a submitted timesheet and immediately returns it to draft so the
// owner can correct and resubmit. The denial comment and reviewer are kept on
// the row; submitted_at is cleared.
func (s *Service) Deny(ctx context.Context, input DenyInput) (*domain.Timesheet, error) {
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

	var denied *domain.Timesheet
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ts, err := s.sheets.GetByIDForUpdate(txCtx, input.TimesheetID)
		if err != nil {
			return fmt.Errorf("lock timesheet: %w", err)
		}

		if ts.Status != domain.TimesheetStatusSubmitted {
			return fmt.Errorf("timesheet %s is %s, not submitted: %w", ts.ID, ts.Status, domain.ErrInvalidState)
		}

		denied, err = s.sheets.Review(txCtx, ts.ID, domain.TimesheetStatusDraft,
			adminID, &input.Comment, nil, s.clock.Now())
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("timesheet %s: %w", ts.ID, domain.ErrInvalidState)
			}
			return fmt.Errorf("deny timesheet: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "timesheet denied",
		slog.String("admin_id", adminID.String()),
		slog.String("timesheet_id", denied.ID.String()),
	)

	message := fmt.Sprintf("Your timesheet for the week of %s was denied: %s",
		denied.WeekStart.Format("2006-01-02"), input.Comment)
	s.notifyOwner(ctx, denied, domain.NotificationTimesheetDenied, "Timesheet denied", message)

	return denied, nil
}

// Unsubmit unlocks a submitted or approved timesheet back to draft so the week's
// entries become editable again. Admin-only escape hatch.
func (s *Service) Unsubmit(ctx context.Context, input UnsubmitInput) (*domain.Timesheet, error) {
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

	var unlocked *domain.Timesheet
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ts, err := s.sheets.GetByIDForUpdate(txCtx, input.TimesheetID)
		if err != nil {
			return fmt.Errorf("lock timesheet: %w", err)
		}

		if !ts.Status.IsFrozen() {
			return fmt.Errorf("timesheet %s is %s, nothing to unlock: %w", ts.ID, ts.Status, domain.ErrInvalidState)
		}

		unlocked, err = s.sheets.Unsubmit(txCtx, ts.ID, adminID, s.clock.Now())
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("timesheet %s: %w", ts.ID, domain.ErrInvalidState)
			}
			return fmt.Errorf("unsubmit timesheet: %w", err)
		}

		// Totals may be stale if entries changed while the sheet was frozen.
		if _, err := s.RecomputeForDate(txCtx, unlocked.UserID, unlocked.WeekStart); err != nil {
			return fmt.Errorf("recompute after unlock: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "timesheet unsubmitted",
		slog.String("admin_id", adminID.String()),
		slog.String("timesheet_id", unlocked.ID.String()),
	)

	return unlocked, nil
}

// notifyOwner sends a review outcome to the timesheet owner.
// Runs after commit; failures are logged and never fail the review.
func (s *Service) notifyOwner(ctx context.Context, ts *domain.Timesheet, ntype domain.NotificationType, title, message string) {
	if _, err := s.notify.Emit(ctx, ts.UserID, ntype, title, message, ts.ID); err != nil {
		s.log.WarnContext(ctx, "notify owner failed",
			slog.String("user_id", ts.UserID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
