// Package timesheet implements the Timesheet repository using PostgreSQL.
// Rows are created lazily on first write to a week. Review transitions use a
// status-guarded compare-and-set with a version bump so concurrent reviewers
// resolve to exactly one winner.
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// Repo provides timesheet persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new timesheet repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const timesheetColumns = `id, user_id, week_start, week_end, total_hours, status, submitted_at, reviewed_at, reviewed_by, admin_comment, version, created_at, updated_at`

const upsertSQL = `
INSERT INTO timesheets (id, user_id, week_start, week_end, total_hours, status, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, 0, 'draft', 1, $5, $5)
ON CONFLICT (user_id, week_start) DO NOTHING
RETURNING ` + timesheetColumns

const getByUserWeekSQL = `
SELECT ` + timesheetColumns + `
FROM timesheets
WHERE user_id = $1 AND week_start = $2`

const getByUserWeekForUpdateSQL = getByUserWeekSQL + `
FOR UPDATE`

const getByIDSQL = `
SELECT ` + timesheetColumns + `
FROM timesheets
WHERE id = $1`

const getByIDForUpdateSQL = getByIDSQL + `
FOR UPDATE`

const listByUserSQL = `
SELECT ` + timesheetColumns + `
FROM timesheets
WHERE user_id = $1
ORDER BY week_start DESC
LIMIT $2 OFFSET $3`

const listByStatusSQL = `
SELECT ` + timesheetColumns + `
FROM timesheets
WHERE status = $1
ORDER BY submitted_at ASC NULLS LAST, week_start ASC`

const setTotalSQL = `
UPDATE timesheets
SET total_hours = $2, updated_at = $3
WHERE id = $1
RETURNING ` + timesheetColumns

const submitSQL = `
UPDATE timesheets
SET status = 'submitted', total_hours = $2, submitted_at = $3,
    reviewed_at = NULL, reviewed_by = NULL, admin_comment = NULL,
    version = version + 1, updated_at = $3
WHERE id = $1 AND status IN ('draft', 'denied')
RETURNING ` + timesheetColumns

const reviewSQL = `
UPDATE timesheets
SET status = $2, submitted_at = $6, reviewed_at = $3, reviewed_by = $4, admin_comment = $5,
    version = version + 1, updated_at = $3
WHERE id = $1 AND status = 'submitted'
RETURNING ` + timesheetColumns

const unsubmitSQL = `
UPDATE timesheets
SET status = 'draft', submitted_at = NULL,
    reviewed_at = $2, reviewed_by = $3,
    version = version + 1, updated_at = $4
WHERE id = $1 AND status IN ('submitted', 'approved')
RETURNING ` + timesheetColumns

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a timesheet by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	return ts, nil
}

// GetByIDForUpdate returns a timesheet by primary key with a row lock.
// Must be called inside a transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDForUpdateSQL, id)

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	return ts, nil
}

// GetByUserWeek returns the timesheet for (user, week start).
// Returns domain.ErrNotFound when the week has never been touched.
func (r *Repo) GetByUserWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByUserWeekSQL, userID, weekStart)

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", uuid.Nil)
	}

	return ts, nil
}

// GetByUserWeekForUpdate is GetByUserWeek with a row lock.
// Must be called inside a transaction.
func (r *Repo) GetByUserWeekForUpdate(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByUserWeekForUpdateSQL, userID, weekStart)

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", uuid.Nil)
	}

	return ts, nil
}

// ListByUser returns the user's timesheets, most recent week first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list timesheets by user: %w", err)
	}
	defer rows.Close()

	sheets, err := scanTimesheets(rows)
	if err != nil {
		return nil, fmt.Errorf("list timesheets by user: %w", err)
	}

	return sheets, nil
}

// ListByStatus returns all timesheets in the given status, oldest submission first.
func (r *Repo) ListByStatus(ctx context.Context, status domain.TimesheetStatus) ([]*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByStatusSQL, string(status))
	if err != nil {
		return nil, fmt.Errorf("list timesheets by status: %w", err)
	}
	defer rows.Close()

	sheets, err := scanTimesheets(rows)
	if err != nil {
		return nil, fmt.Errorf("list timesheets by status: %w", err)
	}

	return sheets, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// GetOrCreate returns the timesheet for (user, week), creating a draft row if
// the week has never been touched. ON CONFLICT DO NOTHING keeps concurrent
// first-writers from failing; the loser re-reads the winner's row.
func (r *Repo) GetOrCreate(ctx context.Context, userID uuid.UUID, week domain.Week, now time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now = now.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, upsertSQL, uuid.New(), userID, week.Start, week.End, now)

	ts, err := scanTimesheet(row)
	if err == nil {
		return ts, nil
	}
	if mapped := postgres.MapError(err, "timesheet", uuid.Nil); !isNotFound(mapped) {
		return nil, mapped
	}

	// Conflict: the row already existed and RETURNING produced nothing.
	return r.GetByUserWeek(ctx, userID, week.Start)
}

// SetTotal stores a recomputed total_hours value.
func (r *Repo) SetTotal(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setTotalSQL, id, totalHours, now.UTC().Truncate(time.Microsecond))

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	return ts, nil
}

// Submit transitions a draft or denied timesheet to submitted, clearing any prior
// review fields. Returns domain.ErrNotFound if the row is not in a submittable
// status; the service turns that into its own transition error.
func (r *Repo) Submit(ctx context.Context, id uuid.UUID, totalHours float64, now time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, submitSQL, id, totalHours, now.UTC().Truncate(time.Microsecond))

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	return ts, nil
}

// Review transitions a submitted timesheet to the given final status and records
// the reviewer. submittedAt lets a denial clear the submission timestamp while an
// approval keeps it. The WHERE status = 'submitted' guard means only one of
// several concurrent reviewers wins; the rest get domain.ErrNotFound.
func (r *Repo) Review(ctx context.Context, id uuid.UUID, status domain.TimesheetStatus, reviewerID uuid.UUID, comment *string, submittedAt *time.Time, now time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, reviewSQL, id, string(status),
		now.UTC().Truncate(time.Microsecond), reviewerID, comment, submittedAt)

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	return ts, nil
}

// Unsubmit reverts a submitted or approved timesheet to draft, recording who
// unlocked it. Review comment is preserved for audit.
func (r *Repo) Unsubmit(ctx context.Context, id uuid.UUID, adminID uuid.UUID, now time.Time) (*domain.Timesheet, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ts0 := now.UTC().Truncate(time.Microsecond)
	row := querier.QueryRow(ctx, unsubmitSQL, id, ts0, adminID, ts0)

	ts, err := scanTimesheet(row)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	return ts, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanTimesheet scans a single timesheet row from pgx.Row.
func scanTimesheet(row pgx.Row) (*domain.Timesheet, error) {
	var (
		ts     domain.Timesheet
		status string
	)

	if err := row.Scan(&ts.ID, &ts.UserID, &ts.WeekStart, &ts.WeekEnd, &ts.TotalHours, &status,
		&ts.SubmittedAt, &ts.ReviewedAt, &ts.ReviewedBy, &ts.AdminComment,
		&ts.Version, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
		return nil, err
	}

	ts.Status = domain.TimesheetStatus(status)

	return &ts, nil
}

// scanTimesheets scans multiple timesheet rows from pgx.Rows.
func scanTimesheets(rows pgx.Rows) ([]*domain.Timesheet, error) {
	var sheets []*domain.Timesheet
	for rows.Next() {
		var (
			ts     domain.Timesheet
			status string
		)

		if err := rows.Scan(&ts.ID, &ts.UserID, &ts.WeekStart, &ts.WeekEnd, &ts.TotalHours, &status,
			&ts.SubmittedAt, &ts.ReviewedAt, &ts.ReviewedBy, &ts.AdminComment,
			&ts.Version, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
			return nil, err
		}

		ts.Status = domain.TimesheetStatus(status)
		sheets = append(sheets, &ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if sheets == nil {
		sheets = []*domain.Timesheet{}
	}

	return sheets, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
