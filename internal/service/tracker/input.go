package tracker

import (
	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// StartInput selects what the new timer tracks. Both references are optional;
// when ProjectID is absent the caller's profile defaults are used instead.
type StartInput struct {
	ProjectID *uuid.UUID
	TaskID    *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i StartInput) Validate() error {
	var errs []domain.FieldError
	if i.ProjectID != nil && *i.ProjectID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "must not be empty"})
	}
	if i.TaskID != nil && *i.TaskID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "must not be empty"})
	}
	if i.TaskID != nil && i.ProjectID == nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "requires project_id"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// StopInput finalizes a timer. SessionID is optional; when absent the caller's
// active session is stopped. Notes end up on the recorded entry.
type StopInput struct {
	SessionID *uuid.UUID
	Notes     *string
}

// Validate checks all fields and collects all errors.
func (i StopInput) Validate() error {
	var errs []domain.FieldError
	if i.SessionID != nil && *i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "must not be empty"})
	}
	if i.Notes != nil && len(*i.Notes) > 2000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// HeartbeatInput identifies the session being kept alive.
type HeartbeatInput struct {
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i HeartbeatInput) Validate() error {
	if i.SessionID == uuid.Nil {
		return domain.NewValidationError("session_id", "required")
	}
	return nil
}
