// Package notification implements the Notification repository using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const notificationColumns = `id, user_id, type, title, message, read, timesheet_id, created_at`

const createSQL = `
INSERT INTO notifications (id, user_id, type, title, message, read, timesheet_id)
VALUES ($1, $2, $3, $4, $5, FALSE, $6)
RETURNING ` + notificationColumns

const listByUserSQL = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const listUnreadByUserSQL = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE user_id = $1 AND NOT read
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const countUnreadSQL = `
SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT read`

const markReadSQL = `
UPDATE notifications
SET read = TRUE
WHERE id = $1 AND user_id = $2
RETURNING ` + notificationColumns

const markAllReadSQL = `
UPDATE notifications
SET read = TRUE
WHERE user_id = $1 AND NOT read`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new unread notification.
func (r *Repo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		n.ID,
		n.UserID,
		string(n.Type),
		n.Title,
		n.Message,
		n.TimesheetID,
	)

	created, err := scanNotification(row)
	if err != nil {
		return nil, postgres.MapError(err, "notification", n.ID)
	}

	return created, nil
}

// ListByUser returns the user's notifications, newest first.
// unreadOnly restricts the result to unread ones.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql := listByUserSQL
	if unreadOnly {
		sql = listUnreadByUserSQL
	}

	rows, err := querier.Query(ctx, sql, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := scanNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

// CountUnread returns the number of unread notifications for the user.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countUnreadSQL, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flags a notification as read.
// Returns domain.ErrNotFound if it does not exist or belongs to another user.
func (r *Repo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*domain.Notification, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, markReadSQL, notificationID, userID)

	n, err := scanNotification(row)
	if err != nil {
		return nil, postgres.MapError(err, "notification", notificationID)
	}

	return n, nil
}

// MarkAllRead flags all of the user's unread notifications as read and returns
// how many rows were updated.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, markAllReadSQL, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return ct.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanNotification scans a single notification row from pgx.Row.
func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		n     domain.Notification
		ntype string
	)

	if err := row.Scan(&n.ID, &n.UserID, &ntype, &n.Title, &n.Message, &n.Read,
		&n.TimesheetID, &n.CreatedAt); err != nil {
		return nil, err
	}

	n.Type = domain.NotificationType(ntype)

	return &n, nil
}

// scanNotifications scans multiple notification rows from pgx.Rows.
func scanNotifications(rows pgx.Rows) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	for rows.Next() {
		var (
			n     domain.Notification
			ntype string
		)

		if err := rows.Scan(&n.ID, &n.UserID, &ntype, &n.Title, &n.Message, &n.Read,
			&n.TimesheetID, &n.CreatedAt); err != nil {
			return nil, err
		}

		n.Type = domain.NotificationType(ntype)
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []*domain.Notification{}
	}

	return notifications, nil
}
