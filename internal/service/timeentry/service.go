// Package timeentry implements manual time entry management: creation against
// open weeks, overlap detection, edits, and the admin override path.
package timeentry

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
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error)
	List(ctx context.Context, filter domain.EntryFilter) ([]*domain.TimeEntry, error)
	ListOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.TimeEntry, error)
	Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepo interface {
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

type taskRepo interface {
	ExistsActiveInProject(ctx context.Context, id, projectID uuid.UUID) (bool, error)
}

// sheetSync guards frozen weeks and keeps weekly totals in step with entry
// writes.
type sheetSync interface {
	IsWeekFrozen(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	RecomputeForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error)
	ReopenWeek(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the manual time entry business logic.
type Service struct {
	entries   entryRepo
	projects  projectRepo
	tasks     taskRepo
	sheets    sheetSync
	tx        txManager
	clock     clockwork.Clock
	loc       *time.Location
	tolerance time.Duration
	log       *slog.Logger
}

// NewService creates a new TimeEntry service. tolerance is the allowed
// disagreement between a provided duration and the one derived from the start
// and end times.
func NewService(
	log *slog.Logger,
	entries entryRepo,
	projects projectRepo,
	tasks taskRepo,
	sheets sheetSync,
	tx txManager,
	clock clockwork.Clock,
	loc *time.Location,
	tolerance time.Duration,
) *Service {
	return &Service{
		entries:   entries,
		projects:  projects,
		tasks:     tasks,
		sheets:    sheets,
		tx:        tx,
		clock:     clock,
		loc:       loc,
		tolerance: tolerance,
		log:       log.With("service", "timeentry"),
	}
}

// dateOf resolves the canonical calendar date of an instant in the tracking
// timezone.
func (s *Service) dateOf(t time.Time) time.Time {
	return domain.DateOf(t, s.loc)
}

// checkRefs verifies the project and task pair references active catalog rows.
func (s *Service) checkRefs(ctx context.Context, projectID, taskID *uuid.UUID) error {
	if projectID != nil {
		ok, err := s.projects.ExistsActive(ctx, *projectID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewValidationError("project_id", "not found or archived")
		}
	}

	if taskID != nil {
		if projectID == nil {
			return domain.NewValidationError("task_id", "requires project_id")
		}
		ok, err := s.tasks.ExistsActiveInProject(ctx, *taskID, *projectID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewValidationError("task_id", "not found in project or archived")
		}
	}

	return nil
}
