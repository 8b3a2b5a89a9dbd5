package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

var (
	_ sessionRepo = &sessionRepoMock{}
	_ entryRepo   = &entryRepoMock{}
	_ projectRepo = &projectRepoMock{}
	_ taskRepo    = &taskRepoMock{}
	_ userRepo    = &userRepoMock{}
	_ sheetSync   = &sheetSyncMock{}
	_ txManager   = nopTx{}
)

// nopTx runs the function directly without a transaction.
type nopTx struct{}

func (nopTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sessionRepoMock struct {
	GetActiveFunc  func(ctx context.Context, userID uuid.UUID) (*domain.TimerSession, error)
	GetByIDFunc    func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TimerSession, error)
	ListStaleFunc  func(ctx context.Context, cutoff time.Time, limit int) ([]*domain.TimerSession, error)
	CreateFunc     func(ctx context.Context, s *domain.TimerSession) (*domain.TimerSession, error)
	HeartbeatFunc  func(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) (*domain.TimerSession, error)
	DeactivateFunc func(ctx context.Context, sessionID uuid.UUID) (*domain.TimerSession, error)
}

func (m *sessionRepoMock) GetActive(ctx context.Context, userID uuid.UUID) (*domain.TimerSession, error) {
	if m.GetActiveFunc == nil {
		panic("sessionRepoMock.GetActiveFunc: method is nil but GetActive was just called")
	}
	return m.GetActiveFunc(ctx, userID)
}

func (m *sessionRepoMock) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TimerSession, error) {
	if m.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID, sessionID)
}

func (m *sessionRepoMock) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*domain.TimerSession, error) {
	if m.ListStaleFunc == nil {
		panic("sessionRepoMock.ListStaleFunc: method is nil but ListStale was just called")
	}
	return m.ListStaleFunc(ctx, cutoff, limit)
}

func (m *sessionRepoMock) Create(ctx context.Context, s *domain.TimerSession) (*domain.TimerSession, error) {
	if m.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, s)
}

func (m *sessionRepoMock) Heartbeat(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) (*domain.TimerSession, error) {
	if m.HeartbeatFunc == nil {
		panic("sessionRepoMock.HeartbeatFunc: method is nil but Heartbeat was just called")
	}
	return m.HeartbeatFunc(ctx, userID, sessionID, at)
}

func (m *sessionRepoMock) Deactivate(ctx context.Context, sessionID uuid.UUID) (*domain.TimerSession, error) {
	if m.DeactivateFunc == nil {
		panic("sessionRepoMock.DeactivateFunc: method is nil but Deactivate was just called")
	}
	return m.DeactivateFunc(ctx, sessionID)
}

type entryRepoMock struct {
	CreateFunc func(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
}

func (m *entryRepoMock) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	if m.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, e)
}

type projectRepoMock struct {
	ExistsActiveFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *projectRepoMock) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsActiveFunc == nil {
		panic("projectRepoMock.ExistsActiveFunc: method is nil but ExistsActive was just called")
	}
	return m.ExistsActiveFunc(ctx, id)
}

type taskRepoMock struct {
	ExistsActiveInProjectFunc func(ctx context.Context, id, projectID uuid.UUID) (bool, error)
}

func (m *taskRepoMock) ExistsActiveInProject(ctx context.Context, id, projectID uuid.UUID) (bool, error) {
	if m.ExistsActiveInProjectFunc == nil {
		panic("taskRepoMock.ExistsActiveInProjectFunc: method is nil but ExistsActiveInProject was just called")
	}
	return m.ExistsActiveInProjectFunc(ctx, id, projectID)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

type sheetSyncMock struct {
	RecomputeForDateFunc func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error)
}

func (m *sheetSyncMock) RecomputeForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error) {
	if m.RecomputeForDateFunc == nil {
		panic("sheetSyncMock.RecomputeForDateFunc: method is nil but RecomputeForDate was just called")
	}
	return m.RecomputeForDateFunc(ctx, userID, day)
}
