// Package timesheet implements the weekly timesheet workflow: lazy creation,
// total recomputation, submission, and the admin review transitions.
package timesheet

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

type timesheetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByUserWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error)
	GetByUserWeekForUpdate(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Timesheet, error)
	ListByStatus(ctx context.Context, status domain.TimesheetStatus) ([]*domain.Timesheet, error)
	SetTotal(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error)
	Submit(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error)
	Review(ctx context.Context, id uuid.UUID, status domain.TimesheetStatus, reviewerID uuid.UUID, comment *string, submittedAt *time.Time, now time.Time) (*domain.Timesheet, error)
	Unsubmit(ctx context.Context, id uuid.UUID, adminID uuid.UUID, now time.Time) (*domain.Timesheet, error)
}

type entryRepo interface {
	SumDuration(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
	ListForWeek(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.TimeEntry, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

type notifier interface {
	Emit(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType, title, message string, timesheetID uuid.UUID) (*domain.Notification, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the timesheet business logic. All day inputs are
// canonical calendar dates (domain.DateOf output or parsed yyyy-mm-dd);
// instant-to-date conversion happens in the calling services.
type Service struct {
	sheets  timesheetRepo
	entries entryRepo
	users   userRepo
	notify  notifier
	tx      txManager
	clock   clockwork.Clock
	log     *slog.Logger
}

// NewService creates a new Timesheet service.
func NewService(
	log *slog.Logger,
	sheets timesheetRepo,
	entries entryRepo,
	users userRepo,
	notify notifier,
	tx txManager,
	clock clockwork.Clock,
) *Service {
	return &Service{
		sheets:  sheets,
		entries: entries,
		users:   users,
		notify:  notify,
		tx:      tx,
		clock:   clock,
		log:     log.With("service", "timesheet"),
	}
}

// weekOf resolves the Monday-start week containing the canonical date.
func (s *Service) weekOf(date time.Time) domain.Week {
	return domain.WeekOfDate(date)
}
