// Package timeentry implements the TimeEntry repository using PostgreSQL.
// Listing uses squirrel for composable filters; everything else is raw SQL.
package timeentry

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

// Repo provides time entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new time entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

var entryColumnList = []string{
	"id", "user_id", "project_id", "task_id", "start_time", "end_time",
	"duration", "entry_type", "date", "notes", "created_at",
}

const entryColumns = `id, user_id, project_id, task_id, start_time, end_time, duration, entry_type, date, notes, created_at`

const createSQL = `
INSERT INTO time_entries (id, user_id, project_id, task_id, start_time, end_time, duration, entry_type, date, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + entryColumns

const getByIDSQL = `
SELECT ` + entryColumns + `
FROM time_entries
WHERE id = $1`

const updateSQL = `
UPDATE time_entries
SET project_id = $2, task_id = $3, start_time = $4, end_time = $5, duration = $6, date = $7, notes = $8
WHERE id = $1
RETURNING ` + entryColumns

const deleteSQL = `
DELETE FROM time_entries
WHERE id = $1`

const listOverlappingSQL = `
SELECT ` + entryColumns + `
FROM time_entries
WHERE user_id = $1
  AND start_time < $3
  AND COALESCE(end_time, start_time + make_interval(secs => duration)) > $2
  AND ($4::uuid IS NULL OR id <> $4)
ORDER BY start_time ASC`

const sumDurationSQL = `
SELECT COALESCE(SUM(duration), 0)
FROM time_entries
WHERE user_id = $1 AND date >= $2 AND date <= $3`

const sumByProjectSQL = `
SELECT te.project_id, p.name, COUNT(*), COALESCE(SUM(te.duration), 0)
FROM time_entries te
LEFT JOIN projects p ON p.id = te.project_id
WHERE te.date >= $1 AND te.date <= $2
  AND ($3::uuid IS NULL OR te.user_id = $3)
GROUP BY te.project_id, p.name
ORDER BY COALESCE(SUM(te.duration), 0) DESC`

const listForWeekSQL = `
SELECT ` + entryColumns + `
FROM time_entries
WHERE user_id = $1 AND date >= $2 AND date <= $3
ORDER BY start_time ASC`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an entry by primary key. Ownership checks belong to the service.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "time_entry", id)
	}

	return entry, nil
}

// List returns entries matching the filter, ordered by start time.
func (r *Repo) List(ctx context.Context, filter domain.EntryFilter) ([]*domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// ListOverlapping returns the user's entries whose [start, effective end) interval
// intersects [start, end). An entry without end_time falls back to start + duration.
// excludeID skips one entry, used when updating an existing entry.
func (r *Repo) ListOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listOverlappingSQL, userID, start.UTC(), end.UTC(), excludeID)
	if err != nil {
		return nil, fmt.Errorf("list overlapping entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("list overlapping entries: %w", err)
	}

	return entries, nil
}

// SumDuration returns the total duration in seconds of the user's entries whose
// date falls in [from, to], both inclusive.
func (r *Repo) SumDuration(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int64
	if err := querier.QueryRow(ctx, sumDurationSQL, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum entry durations: %w", err)
	}

	return total, nil
}

// ListForWeek returns the user's entries whose date falls in [from, to], ordered
// by start time. Used for timesheet detail views.
func (r *Repo) ListForWeek(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listForWeekSQL, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list week entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("list week entries: %w", err)
	}

	return entries, nil
}

// SumByProject aggregates entry durations per project over [from, to].
// Passing a nil userID aggregates across all users.
func (r *Repo) SumByProject(ctx context.Context, from, to time.Time, userID *uuid.UUID) ([]domain.ProjectSum, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sumByProjectSQL, from, to, userID)
	if err != nil {
		return nil, fmt.Errorf("sum by project: %w", err)
	}
	defer rows.Close()

	sums := []domain.ProjectSum{}
	for rows.Next() {
		var s domain.ProjectSum
		if err := rows.Scan(&s.ProjectID, &s.ProjectName, &s.EntryCount, &s.TotalSecs); err != nil {
			return nil, fmt.Errorf("sum by project: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum by project: %w", err)
	}

	return sums, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new entry and returns the persisted domain.TimeEntry.
func (r *Repo) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	startTime := e.StartTime.UTC().Truncate(time.Microsecond)
	var endTime *time.Time
	if e.EndTime != nil {
		t := e.EndTime.UTC().Truncate(time.Microsecond)
		endTime = &t
	}

	row := querier.QueryRow(ctx, createSQL,
		e.ID,
		e.UserID,
		e.ProjectID,
		e.TaskID,
		startTime,
		endTime,
		e.Duration,
		string(e.EntryType),
		e.Date,
		e.Notes,
	)

	created, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "time_entry", e.ID)
	}

	return created, nil
}

// Update rewrites the mutable fields of an entry and returns the stored row.
func (r *Repo) Update(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	startTime := e.StartTime.UTC().Truncate(time.Microsecond)
	var endTime *time.Time
	if e.EndTime != nil {
		t := e.EndTime.UTC().Truncate(time.Microsecond)
		endTime = &t
	}

	row := querier.QueryRow(ctx, updateSQL,
		e.ID,
		e.ProjectID,
		e.TaskID,
		startTime,
		endTime,
		e.Duration,
		e.Date,
		e.Notes,
	)

	updated, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "time_entry", e.ID)
	}

	return updated, nil
}

// Delete removes an entry by primary key.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "time_entry", id)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("time_entry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanEntry scans a single entry row from pgx.Row.
func scanEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var (
		e         domain.TimeEntry
		entryType string
	)

	if err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.TaskID, &e.StartTime, &e.EndTime,
		&e.Duration, &entryType, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
		return nil, err
	}

	e.EntryType = domain.EntryType(entryType)

	return &e, nil
}

// scanEntries scans multiple entry rows from pgx.Rows.
func scanEntries(rows pgx.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var (
			e         domain.TimeEntry
			entryType string
		)

		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.TaskID, &e.StartTime, &e.EndTime,
			&e.Duration, &entryType, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.EntryType = domain.EntryType(entryType)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*domain.TimeEntry{}
	}

	return entries, nil
}
