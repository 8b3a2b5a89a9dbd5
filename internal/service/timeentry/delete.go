package timeentry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// Delete removes an entry and refreshes its week total. Only the owner or an
// admin may delete, and only from an editable week, either unlocked or
// reopened by an admin unlock-and-edit.
func (s *Service) Delete(ctx context.Context, input DeleteInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		entry, err := s.entries.GetByID(txCtx, input.EntryID)
		if err != nil {
			return fmt.Errorf("get entry: %w", err)
		}
		if entry.UserID != userID && !ctxutil.IsAdminCtx(ctx) {
			return domain.ErrForbidden
		}

		if err := s.ensureEditable(txCtx, entry.UserID, entry.Date, input.Unlock); err != nil {
			return err
		}

		if err := s.entries.Delete(txCtx, entry.ID); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}

		if _, err := s.sheets.RecomputeForDate(txCtx, entry.UserID, entry.Date); err != nil {
			return fmt.Errorf("recompute week total: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "entry deleted",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", input.EntryID.String()),
	)

	return nil
}
