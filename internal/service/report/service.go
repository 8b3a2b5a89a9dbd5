// Package report aggregates recorded time into per-project summaries over a
// date range. Employees report on their own entries; admins can report on a
// single user or across everyone.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	SumByProject(ctx context.Context, from, to time.Time, userID *uuid.UUID) ([]domain.ProjectSum, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the reporting business logic.
type Service struct {
	entries entryRepo
	clock   clockwork.Clock
	log     *slog.Logger
}

// NewService creates a new Report service.
func NewService(log *slog.Logger, entries entryRepo, clock clockwork.Clock) *Service {
	return &Service{
		entries: entries,
		clock:   clock,
		log:     log.With("service", "report"),
	}
}
