package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
	"github.com/omnigratum/timetrack-backend/pkg/ctxutil"
)

// CreateProject adds a project to the catalog. Admin-only; a duplicate name
// fails with domain.ErrAlreadyExists.
func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.projects.Create(ctx, &domain.Project{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedBy:   &adminID,
		Status:      domain.CatalogStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.InfoContext(ctx, "project created",
		slog.String("admin_id", adminID.String()),
		slog.String("project_id", created.ID.String()),
	)

	return created, nil
}

// UpdateProject renames a project or replaces its description. Admin-only.
func (s *Service) UpdateProject(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.projects.Update(ctx, input.ProjectID, strings.TrimSpace(input.Name), input.Description)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return updated, nil
}

// SetProjectStatus archives or reactivates a project. Archiving keeps
// historical entries intact but stops new tracking against it. Admin-only.
func (s *Service) SetProjectStatus(ctx context.Context, projectID uuid.UUID, status domain.CatalogStatus) (*domain.Project, error) {
	adminID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be active or archived")
	}

	updated, err := s.projects.SetStatus(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("set project status: %w", err)
	}

	s.log.InfoContext(ctx, "project status changed",
		slog.String("admin_id", adminID.String()),
		slog.String("project_id", updated.ID.String()),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

// GetProject returns one project.
func (s *Service) GetProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return p, nil
}

// ListProjects returns the catalog, optionally restricted to active projects.
func (s *Service) ListProjects(ctx context.Context, activeOnly bool) ([]*domain.Project, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	projects, err := s.projects.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}
