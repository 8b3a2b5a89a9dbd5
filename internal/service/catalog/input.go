package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 2000
)

// CreateProjectInput holds the parameters for a new project.
type CreateProjectInput struct {
	Name        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i CreateProjectInput) Validate() error {
	return validateNameDescription(i.Name, i.Description)
}

// UpdateProjectInput renames a project or replaces its description.
type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i UpdateProjectInput) Validate() error {
	if i.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "required")
	}
	return validateNameDescription(i.Name, i.Description)
}

// CreateTaskInput holds the parameters for a new task inside a project.
type CreateTaskInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i CreateTaskInput) Validate() error {
	if i.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "required")
	}
	return validateNameDescription(i.Name, i.Description)
}

// UpdateTaskInput renames a task or replaces its description.
type UpdateTaskInput struct {
	TaskID      uuid.UUID
	Name        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i UpdateTaskInput) Validate() error {
	if i.TaskID == uuid.Nil {
		return domain.NewValidationError("task_id", "required")
	}
	return validateNameDescription(i.Name, i.Description)
}

func validateNameDescription(name string, description *string) error {
	var errs []domain.FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if description != nil && len(*description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
