package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

var (
	_ timesheetRepo = &timesheetRepoMock{}
	_ entryRepo     = &entryRepoMock{}
	_ userRepo      = &userRepoMock{}
	_ notifier      = &notifierMock{}
	_ txManager     = nopTx{}
)

// nopTx runs the function directly without a transaction.
type nopTx struct{}

func (nopTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type timesheetRepoMock struct {
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByIDForUpdateFunc       func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByUserWeekFunc          func(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error)
	GetByUserWeekForUpdateFunc func(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error)
	GetOrCreateFunc            func(ctx context.Context, userID uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error)
	ListByUserFunc             func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Timesheet, error)
	ListByStatusFunc           func(ctx context.Context, status domain.TimesheetStatus) ([]*domain.Timesheet, error)
	SetTotalFunc               func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error)
	SubmitFunc                 func(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error)
	ReviewFunc                 func(ctx context.Context, id uuid.UUID, status domain.TimesheetStatus, reviewerID uuid.UUID, comment *string, submittedAt *time.Time, now time.Time) (*domain.Timesheet, error)
	UnsubmitFunc               func(ctx context.Context, id uuid.UUID, adminID uuid.UUID, now time.Time) (*domain.Timesheet, error)
}

func (m *timesheetRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	if m.GetByIDFunc == nil {
		panic("timesheetRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *timesheetRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	if m.GetByIDForUpdateFunc == nil {
		panic("timesheetRepoMock.GetByIDForUpdateFunc: method is nil but GetByIDForUpdate was just called")
	}
	return m.GetByIDForUpdateFunc(ctx, id)
}

func (m *timesheetRepoMock) GetByUserWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
	if m.GetByUserWeekFunc == nil {
		panic("timesheetRepoMock.GetByUserWeekFunc: method is nil but GetByUserWeek was just called")
	}
	return m.GetByUserWeekFunc(ctx, userID, weekStart)
}

func (m *timesheetRepoMock) GetByUserWeekForUpdate(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
	if m.GetByUserWeekForUpdateFunc == nil {
		panic("timesheetRepoMock.GetByUserWeekForUpdateFunc: method is nil but GetByUserWeekForUpdate was just called")
	}
	return m.GetByUserWeekForUpdateFunc(ctx, userID, weekStart)
}

func (m *timesheetRepoMock) GetOrCreate(ctx context.Context, userID uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
	if m.GetOrCreateFunc == nil {
		panic("timesheetRepoMock.GetOrCreateFunc: method is nil but GetOrCreate was just called")
	}
	return m.GetOrCreateFunc(ctx, userID, week, now)
}

func (m *timesheetRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Timesheet, error) {
	if m.ListByUserFunc == nil {
		panic("timesheetRepoMock.ListByUserFunc: method is nil but ListByUser was just called")
	}
	return m.ListByUserFunc(ctx, userID, limit, offset)
}

func (m *timesheetRepoMock) ListByStatus(ctx context.Context, status domain.TimesheetStatus) ([]*domain.Timesheet, error) {
	if m.ListByStatusFunc == nil {
		panic("timesheetRepoMock.ListByStatusFunc: method is nil but ListByStatus was just called")
	}
	return m.ListByStatusFunc(ctx, status)
}

func (m *timesheetRepoMock) SetTotal(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
	if m.SetTotalFunc == nil {
		panic("timesheetRepoMock.SetTotalFunc: method is nil but SetTotal was just called")
	}
	return m.SetTotalFunc(ctx, id, totalHours, now)
}

func (m *timesheetRepoMock) Submit(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
	if m.SubmitFunc == nil {
		panic("timesheetRepoMock.SubmitFunc: method is nil but Submit was just called")
	}
	return m.SubmitFunc(ctx, id, totalHours, now)
}

func (m *timesheetRepoMock) Review(ctx context.Context, id uuid.UUID, status domain.TimesheetStatus, reviewerID uuid.UUID, comment *string, submittedAt *time.Time, now time.Time) (*domain.Timesheet, error) {
	if m.ReviewFunc == nil {
		panic("timesheetRepoMock.ReviewFunc: method is nil but Review was just called")
	}
	return m.ReviewFunc(ctx, id, status, reviewerID, comment, submittedAt, now)
}

func (m *timesheetRepoMock) Unsubmit(ctx context.Context, id uuid.UUID, adminID uuid.UUID, now time.Time) (*domain.Timesheet, error) {
	if m.UnsubmitFunc == nil {
		panic("timesheetRepoMock.UnsubmitFunc: method is nil but Unsubmit was just called")
	}
	return m.UnsubmitFunc(ctx, id, adminID, now)
}

type entryRepoMock struct {
	SumDurationFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
	ListForWeekFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.TimeEntry, error)
}

func (m *entryRepoMock) SumDuration(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	if m.SumDurationFunc == nil {
		panic("entryRepoMock.SumDurationFunc: method is nil but SumDuration was just called")
	}
	return m.SumDurationFunc(ctx, userID, from, to)
}

func (m *entryRepoMock) ListForWeek(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.TimeEntry, error) {
	if m.ListForWeekFunc == nil {
		panic("entryRepoMock.ListForWeekFunc: method is nil but ListForWeek was just called")
	}
	return m.ListForWeekFunc(ctx, userID, from, to)
}

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListByRoleFunc func(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if m.ListByRoleFunc == nil {
		panic("userRepoMock.ListByRoleFunc: method is nil but ListByRole was just called")
	}
	return m.ListByRoleFunc(ctx, role)
}

type notifierMock struct {
	EmitFunc func(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType, title, message string, timesheetID uuid.UUID) (*domain.Notification, error)
}

func (m *notifierMock) Emit(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType, title, message string, timesheetID uuid.UUID) (*domain.Notification, error) {
	if m.EmitFunc == nil {
		panic("notifierMock.EmitFunc: method is nil but Emit was just called")
	}
	return m.EmitFunc(ctx, userID, ntype, title, message, timesheetID)
}
