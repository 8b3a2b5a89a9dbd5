// Package project implements the Project repository using PostgreSQL.
package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/omnigratum/timetrack-backend/internal/adapter/postgres"
	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new project repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const projectColumns = `id, name, description, created_by, status, created_at`

const createSQL = `
INSERT INTO projects (id, name, description, created_by, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + projectColumns

const getByIDSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1`

const listSQL = `
SELECT ` + projectColumns + `
FROM projects
ORDER BY name ASC`

const listActiveSQL = `
SELECT ` + projectColumns + `
FROM projects
WHERE status = 'active'
ORDER BY name ASC`

const updateSQL = `
UPDATE projects
SET name = $2, description = $3
WHERE id = $1
RETURNING ` + projectColumns

const setStatusSQL = `
UPDATE projects
SET status = $2
WHERE id = $1
RETURNING ` + projectColumns

const existsActiveSQL = `
SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND status = 'active')`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetByID returns a project by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	project, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return project, nil
}

// List returns projects ordered by name. When activeOnly is true,
// archived projects are excluded.
func (r *Repo) List(ctx context.Context, activeOnly bool) ([]*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql := listSQL
	if activeOnly {
		sql = listActiveSQL
	}

	rows, err := querier.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects, err := scanProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// ExistsActive reports whether an active (non-archived) project with the given ID exists.
func (r *Repo) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsActiveSQL, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("project %s exists: %w", id, err)
	}

	return exists, nil
}

// Create inserts a new project and returns the persisted domain.Project.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		p.ID,
		p.Name,
		p.Description,
		p.CreatedBy,
		string(p.Status),
	)

	created, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", p.ID)
	}

	return created, nil
}

// Update modifies name and description for the given project.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL, id, name, description)

	project, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return project, nil
}

// SetStatus changes the project's lifecycle status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.CatalogStatus) (*domain.Project, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setStatusSQL, id, string(status))

	project, err := scanProject(row)
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return project, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanProject scans a single project row from pgx.Row.
func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p      domain.Project
		status string
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy, &status, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Status = domain.CatalogStatus(status)

	return &p, nil
}

// scanProjects scans multiple project rows from pgx.Rows.
func scanProjects(rows pgx.Rows) ([]*domain.Project, error) {
	var projects []*domain.Project
	for rows.Next() {
		var (
			p      domain.Project
			status string
		)

		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedBy, &status, &p.CreatedAt); err != nil {
			return nil, err
		}

		p.Status = domain.CatalogStatus(status)
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []*domain.Project{}
	}

	return projects, nil
}
