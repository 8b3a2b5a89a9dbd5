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

// CreateTask adds a task to a project. The parent project must exist and be
// active. Admin-only.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
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

	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project.Status != domain.CatalogStatusActive {
		return nil, domain.NewValidationError("project_id", "project is archived")
	}

	created, err := s.tasks.Create(ctx, &domain.Task{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ProjectID:   project.ID,
		Status:      domain.CatalogStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.InfoContext(ctx, "task created",
		slog.String("admin_id", adminID.String()),
		slog.String("task_id", created.ID.String()),
		slog.String("project_id", project.ID.String()),
	)

	return created, nil
}

// UpdateTask renames a task or replaces its description. Admin-only.
func (s *Service) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, input.TaskID, strings.TrimSpace(input.Name), input.Description)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return updated, nil
}

// SetTaskStatus archives or reactivates a task. Admin-only.
func (s *Service) SetTaskStatus(ctx context.Context, taskID uuid.UUID, status domain.CatalogStatus) (*domain.Task, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if taskID == uuid.Nil {
		return nil, domain.NewValidationError("task_id", "required")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "must be active or archived")
	}

	updated, err := s.tasks.SetStatus(ctx, taskID, status)
	if err != nil {
		return nil, fmt.Errorf("set task status: %w", err)
	}

	return updated, nil
}

// ListTasks returns the tasks of one project.
func (s *Service) ListTasks(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return nil, domain.NewValidationError("project_id", "required")
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}
