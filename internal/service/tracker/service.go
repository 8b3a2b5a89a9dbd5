// Package tracker implements the live timer workflow: one active session per
// user, heartbeat liveness, stop-to-entry conversion, and reaping of sessions
// whose client went away.
package tracker

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

type sessionRepo interface {
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.TimerSession, error)
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TimerSession, error)
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*domain.TimerSession, error)
	Create(ctx context.Context, s *domain.TimerSession) (*domain.TimerSession, error)
	Heartbeat(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) (*domain.TimerSession, error)
	Deactivate(ctx context.Context, sessionID uuid.UUID) (*domain.TimerSession, error)
}

type entryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
}

type projectRepo interface {
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type taskRepo interface {
	ExistsActiveInProject(ctx context.Context, id, projectID uuid.UUID) (bool, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// sheetSync keeps the weekly totals in step with entry writes.
type sheetSync interface {
	RecomputeForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the timer business logic.
type Service struct {
	sessions  sessionRepo
	entries   entryRepo
	projects  projectRepo
	tasks     taskRepo
	users     userRepo
	sheets    sheetSync
	tx        txManager
	clock     clockwork.Clock
	loc       *time.Location
	staleness time.Duration
	reapBatch int
	log       *slog.Logger
}

// NewService creates a new Tracker service. staleness is the heartbeat age
// after which a session counts as abandoned; reapBatch caps how many sessions
// one reaper pass finalizes.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	entries entryRepo,
	projects projectRepo,
	tasks taskRepo,
	users userRepo,
	sheets sheetSync,
	tx txManager,
	clock clockwork.Clock,
	loc *time.Location,
	staleness time.Duration,
	reapBatch int,
) *Service {
	return &Service{
		sessions:  sessions,
		entries:   entries,
		projects:  projects,
		tasks:     tasks,
		users:     users,
		sheets:    sheets,
		tx:        tx,
		clock:     clock,
		loc:       loc,
		staleness: staleness,
		reapBatch: reapBatch,
		log:       log.With("service", "tracker"),
	}
}

// dateOf resolves the canonical calendar date of an instant in the tracking
// timezone.
func (s *Service) dateOf(t time.Time) time.Time {
	return domain.DateOf(t, s.loc)
}
