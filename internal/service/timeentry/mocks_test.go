package timeentry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

var (
	_ entryRepo   = &entryRepoMock{}
	_ projectRepo = &projectRepoMock{}
	_ taskRepo    = &taskRepoMock{}
	_ sheetSync   = &sheetSyncMock{}
	_ txManager   = nopTx{}
)

// nopTx runs the function directly without a transaction.
type nopTx struct{}

func (nopTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type entryRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error)
	ListFunc            func(ctx context.Context, filter domain.EntryFilter) ([]*domain.TimeEntry, error)
	ListOverlappingFunc func(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.TimeEntry, error)
	CreateFunc          func(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	UpdateFunc          func(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	if m.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *entryRepoMock) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.TimeEntry, error) {
	if m.ListFunc == nil {
		panic("entryRepoMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx, filter)
}

func (m *entryRepoMock) ListOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.TimeEntry, error) {
	if m.ListOverlappingFunc == nil {
		panic("entryRepoMock.ListOverlappingFunc: method is nil but ListOverlapping was just called")
	}
	return m.ListOverlappingFunc(ctx, userID, start, end, excludeID)
}

func (m *entryRepoMock) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	if m.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but Create was just called")
	}
	return m.CreateFunc(ctx, e)
}

func (m *entryRepoMock) Update(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	if m.UpdateFunc == nil {
		panic("entryRepoMock.UpdateFunc: method is nil but Update was just called")
	}
	return m.UpdateFunc(ctx, e)
}

func (m *entryRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("entryRepoMock.DeleteFunc: method is nil but Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
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

type sheetSyncMock struct {
	IsWeekFrozenFunc     func(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	RecomputeForDateFunc func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error)
	ReopenWeekFunc       func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error)
}

func (m *sheetSyncMock) IsWeekFrozen(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	if m.IsWeekFrozenFunc == nil {
		panic("sheetSyncMock.IsWeekFrozenFunc: method is nil but IsWeekFrozen was just called")
	}
	return m.IsWeekFrozenFunc(ctx, userID, day)
}

func (m *sheetSyncMock) RecomputeForDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error) {
	if m.RecomputeForDateFunc == nil {
		panic("sheetSyncMock.RecomputeForDateFunc: method is nil but RecomputeForDate was just called")
	}
	return m.RecomputeForDateFunc(ctx, userID, day)
}

func (m *sheetSyncMock) ReopenWeek(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Timesheet, error) {
	if m.ReopenWeekFunc == nil {
		panic("sheetSyncMock.ReopenWeekFunc: method is nil but ReopenWeek was just called")
	}
	return m.ReopenWeekFunc(ctx, userID, day)
}
