// Package catalog manages the project and task reference data that time
// entries and timer sessions point at. Reads are open to every authenticated
// user; mutations are admin-only.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type projectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Project, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.CatalogStatus) (*domain.Project, error)
}

type taskRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id uuid.UUID, name string, description *string) (*domain.Task, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.CatalogStatus) (*domain.Task, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the catalog business logic.
type Service struct {
	projects projectRepo
	tasks    taskRepo
	log      *slog.Logger
}

// NewService creates a new Catalog service.
func NewService(log *slog.Logger, projects projectRepo, tasks taskRepo) *Service {
	return &Service{
		projects: projects,
		tasks:    tasks,
		log:      log.With("service", "catalog"),
	}
}
