// Package task implements the Task repository using PostgreSQL.
package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const taskColumns = `id, name, description, project_id, status, created_at`

const createSQL = `
INSERT INTO tasks (id, name, description, project_id, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + taskColumns

const getByIDSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1`

const listByProjectSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE project_id = $1
ORDER BY name ASC`

const updateSQL = `
UPDATE tasks
SET name = $2, description = $3
WHERE id = $1
RETURNING ` + taskColumns

const setStatusSQL = `
UPDATE tasks
SET status = $2
WHERE id = $1
RETURNING ` + taskColumns

const existsActiveInProjectSQL = `
SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND project_id = $2 AND status = 'active')`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetByID returns a task by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	task, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}

	return task, nil
}

// ListByProject returns tasks of a project ordered by name.
func (r *Repo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByProjectSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}

	return tasks, nil
}

// ExistsActiveInProject reports whether an active task with the given ID exists
// and belongs to the given project.
func (r *Repo) ExistsActiveInProject(ctx context.Context, id, projectID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsActiveInProjectSQL, id, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("task %s exists: %w", id, err)
	}

	return exists, nil
}

// Create inserts a new task and returns the persisted domain.Task.
// A missing project results in domain.ErrNotFound via the FK constraint.
func (r *Repo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		task.ID,
		task.Name,
		task.Description,
		task.ProjectID,
		string(task.Status),
	)

	created, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", task.ID)
	}

	return created, nil
}

// Update modifies name and description for the given task.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL, id, name, description)

	task, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}

	return task, nil
}

// SetStatus changes the task's lifecycle status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.CatalogStatus) (*domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setStatusSQL, id, string(status))

	task, err := scanTask(row)
	if err != nil {
		return nil, postgres.MapError(err, "task", id)
	}

	return task, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanTask scans a single task row from pgx.Row.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)

	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.ProjectID, &status, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Status = domain.CatalogStatus(status)

	return &t, nil
}

// scanTasks scans multiple task rows from pgx.Rows.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var (
			t      domain.Task
			status string
		)

		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ProjectID, &status, &t.CreatedAt); err != nil {
			return nil, err
		}

		t.Status = domain.CatalogStatus(status)
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}
