package timesheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Submit locks the caller's week for approval. The total is recomputed from the
// entries inside the same transaction, so the figure the admin reviews is exactly
// what was stored at submit time. An empty week cannot be submitted. Submitting
// an already submitted or approved week fails with domain.ErrInvalidState;
// resubmitting after a denial clears the prior review fields.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Timesheet, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	week := s.weekOf(input.WeekOf)

	var submitted *domain.Timesheet
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ts, err := s.sheets.GetOrCreate(txCtx, userID, week, s.clock.Now())
		if err != nil {
			return fmt.Errorf("get or create timesheet: %w", err)
		}

		// Lock the row so a concurrent reviewer or second submit serializes here.
		ts, err = s.sheets.GetByIDForUpdate(txCtx, ts.ID)
		if err != nil {
			return fmt.Errorf("lock timesheet: %w", err)
		}

		if ts.Status.IsFrozen() {
			return fmt.Errorf("timesheet %s is %s: %w", ts.ID, ts.Status, domain.ErrInvalidState)
		}

		total, err := s.entries.SumDuration(txCtx, userID, week.Start, week.End)
		if err != nil {
			return fmt.Errorf("sum week durations: %w", err)
		}
		if total == 0 {
			return domain.NewValidationError("week_of", "no time recorded for this week")
		}

		submitted, err = s.sheets.Submit(txCtx, ts.ID, domain.HoursFromSeconds(total), s.clock.Now())
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("timesheet %s: %w", ts.ID, domain.ErrInvalidState)
			}
			return fmt.Errorf("submit timesheet: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "timesheet submitted",
		slog.String("user_id", userID.String()),
		slog.String("timesheet_id", submitted.ID.String()),
		slog.Float64("total_hours", submitted.TotalHours),
	)

	s.notifyAdmins(ctx, submitted)

	return submitted, nil
}

// notifyAdmins fans a submission notification out to every active admin.
// Runs after commit; failures are logged and never fail the submission.
func (s *Service) notifyAdmins(ctx context.Context, ts *domain.Timesheet) {
	owner, err := s.users.GetByID(ctx, ts.UserID)
	if err != nil {
		s.log.WarnContext(ctx, "notify admins: load owner failed", slog.String("error", err.Error()))
		return
	}

	admins, err := s.users.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		s.log.WarnContext(ctx, "notify admins: list admins failed", slog.String("error", err.Error()))
		return
	}

	title := "Timesheet submitted"
	message := fmt.Sprintf("%s submitted the week of %s (%.2f h) for approval.",
		owner.Name, ts.WeekStart.Format("2006-01-02"), ts.TotalHours)

	for _, admin := range admins {
		if _, err := s.notify.Emit(ctx, admin.ID, domain.NotificationTimesheetSubmitted, title, message, ts.ID); err != nil {
			s.log.WarnContext(ctx, "notify admin failed",
				slog.String("admin_id", admin.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
