// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const userColumns = `id, email, password_hash, name, role, status, default_project_id, default_task_id, created_at`

const createSQL = `
INSERT INTO users (id, email, password_hash, name, role, status, default_project_id, default_task_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

const getByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1)`

const listSQL = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at ASC`

const listByRoleSQL = `
SELECT ` + userColumns + `
FROM users
WHERE role = $1 AND status = 'active'
ORDER BY created_at ASC`

const updateDefaultsSQL = `
UPDATE users
SET default_project_id = $2, default_task_id = $3
WHERE id = $1
RETURNING ` + userColumns

const setStatusSQL = `
UPDATE users
SET status = $2
WHERE id = $1
RETURNING ` + userColumns

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return user, nil
}

// GetByEmail returns a user by email address (matched case-insensitively).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByEmailSQL, email)

	user, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return user, nil
}

// List returns all users ordered by creation time.
func (r *Repo) List(ctx context.Context) ([]*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// ListByRole returns active users with the given role, used for notification fan-out.
func (r *Repo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByRoleSQL, string(role))
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}

	return users, nil
}

// Create inserts a new user and returns the persisted domain.User.
// A unique index on lower(email) makes duplicate emails fail with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
		string(u.Role),
		string(u.Status),
		u.DefaultProject,
		u.DefaultTask,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return created, nil
}

// UpdateDefaults sets the user's default project and task references.
func (r *Repo) UpdateDefaults(ctx context.Context, id uuid.UUID, projectID, taskID *uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateDefaultsSQL, id, projectID, taskID)

	user, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return user, nil
}

// SetStatus changes the user's account status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setStatusSQL, id, string(status))

	user, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return user, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanUser scans a single user row from pgx.Row.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u      domain.User
		role   string
		status string
	)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &status,
		&u.DefaultProject, &u.DefaultTask, &u.CreatedAt); err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)

	return &u, nil
}

// scanUsers scans multiple user rows from pgx.Rows.
func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		var (
			u      domain.User
			role   string
			status string
		)

		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &status,
			&u.DefaultProject, &u.DefaultTask, &u.CreatedAt); err != nil {
			return nil, err
		}

		u.Role = domain.Role(role)
		u.Status = domain.UserStatus(status)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if users == nil {
		users = []*domain.User{}
	}

	return users, nil
}
