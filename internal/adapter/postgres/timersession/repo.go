// Package timersession implements the TimerSession repository using PostgreSQL.
// A partial unique index (user_id WHERE active) enforces the single-active-session
// rule at the database level; all stop paths use compare-and-set updates so
// concurrent stop/reap attempts resolve to exactly one winner.
package timersession

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// Repo provides timer session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new timer session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `id, user_id, project_id, task_id, start_time, last_heartbeat, active, date, created_at`

const createSQL = `
INSERT INTO timer_sessions (id, user_id, project_id, task_id, start_time, last_heartbeat, active, date)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7)
RETURNING ` + sessionColumns

const getActiveSQL = `
SELECT ` + sessionColumns + `
FROM timer_sessions
WHERE user_id = $1 AND active`

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM timer_sessions
WHERE id = $1 AND user_id = $2`

const heartbeatSQL = `
UPDATE timer_sessions
SET last_heartbeat = $3
WHERE id = $1 AND user_id = $2 AND active
RETURNING ` + sessionColumns

const deactivateSQL = `
UPDATE timer_sessions
SET active = FALSE
WHERE id = $1 AND active
RETURNING ` + sessionColumns

const listStaleSQL = `
SELECT ` + sessionColumns + `
FROM timer_sessions
WHERE active AND last_heartbeat < $1
ORDER BY last_heartbeat ASC
LIMIT $2`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetActive returns the user's current active session.
// Returns domain.ErrNotFound if no active session exists.
func (r *Repo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.TimerSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getActiveSQL, userID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "timer_session", uuid.Nil)
	}

	return session, nil
}

// GetByID returns a session by primary key filtered by user_id.
// Returns domain.ErrNotFound if the session does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.TimerSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, sessionID, userID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "timer_session", sessionID)
	}

	return session, nil
}

// ListStale returns up to limit active sessions whose last heartbeat is strictly
// older than cutoff, oldest first.
func (r *Repo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*domain.TimerSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listStaleSQL, cutoff.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list stale sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, fmt.Errorf("list stale sessions: %w", err)
	}

	return sessions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new active session and returns the persisted domain.TimerSession.
// The partial unique index on (user_id) WHERE active makes a second concurrent start
// fail with domain.ErrAlreadyExists; the service maps that to its conflict error.
func (r *Repo) Create(ctx context.Context, s *domain.TimerSession) (*domain.TimerSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	startTime := s.StartTime.UTC().Truncate(time.Microsecond)
	lastHeartbeat := s.LastHeartbeat.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		s.ID,
		s.UserID,
		s.ProjectID,
		s.TaskID,
		startTime,
		lastHeartbeat,
		s.Date,
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "timer_session", s.ID)
	}

	return created, nil
}

// Heartbeat bumps last_heartbeat on the user's session.
// Returns domain.ErrNotFound if the session does not exist, belongs to another
// user, or has already been stopped or reaped.
func (r *Repo) Heartbeat(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) (*domain.TimerSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, heartbeatSQL, sessionID, userID, at.UTC().Truncate(time.Microsecond))

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "timer_session", sessionID)
	}

	return session, nil
}

// Deactivate flips active to FALSE for the session, but only if it is still active.
// The WHERE active guard means exactly one of several concurrent stop/reap attempts
// gets the row back; all others receive domain.ErrNotFound.
func (r *Repo) Deactivate(ctx context.Context, sessionID uuid.UUID) (*domain.TimerSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, deactivateSQL, sessionID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "timer_session", sessionID)
	}

	return session, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanSession scans a single session row from pgx.Row.
func scanSession(row pgx.Row) (*domain.TimerSession, error) {
	var s domain.TimerSession

	if err := row.Scan(&s.ID, &s.UserID, &s.ProjectID, &s.TaskID, &s.StartTime,
		&s.LastHeartbeat, &s.Active, &s.Date, &s.CreatedAt); err != nil {
		return nil, err
	}

	return &s, nil
}

// scanSessions scans multiple session rows from pgx.Rows.
func scanSessions(rows pgx.Rows) ([]*domain.TimerSession, error) {
	var sessions []*domain.TimerSession
	for rows.Next() {
		var s domain.TimerSession

		if err := rows.Scan(&s.ID, &s.UserID, &s.ProjectID, &s.TaskID, &s.StartTime,
			&s.LastHeartbeat, &s.Active, &s.Date, &s.CreatedAt); err != nil {
			return nil, err
		}

		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if sessions == nil {
		sessions = []*domain.TimerSession{}
	}

	return sessions, nil
}
