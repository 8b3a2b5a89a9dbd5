package timesheet

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// GetInput identifies a week to inspect. UserID may be set by admins to look
// at another user's timesheet; non-admins must leave it empty.
type GetInput struct {
	WeekOf time.Time
	UserID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i GetInput) Validate() error {
	if i.WeekOf.IsZero() {
		return domain.NewValidationError("week_of", "required")
	}
	return nil
}

// ListInput holds pagination for a user's timesheet history.
type ListInput struct {
	UserID *uuid.UUID
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SubmitInput identifies the week the caller submits for approval.
type SubmitInput struct {
	WeekOf time.Time
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	if i.WeekOf.IsZero() {
		return domain.NewValidationError("week_of", "required")
	}
	return nil
}

// ApproveInput holds the parameters for approving a submitted timesheet.
type ApproveInput struct {
	TimesheetID uuid.UUID
	Comment     *string
}

// Validate checks all fields and collects all errors.
func (i ApproveInput) Validate() error {
	var errs []domain.FieldError
	if i.TimesheetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "timesheet_id", Message: "required"})
	}
	if i.Comment != nil && len(*i.Comment) > 1000 {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DenyInput holds the parameters for denying a submitted timesheet.
// A comment is mandatory so the owner knows what to fix.
type DenyInput struct {
	TimesheetID uuid.UUID
	Comment     string
}

// Validate checks all fields and collects all errors.
func (i DenyInput) Validate() error {
	var errs []domain.FieldError
	if i.TimesheetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "timesheet_id", Message: "required"})
	}
	if strings.TrimSpace(i.Comment) == "" {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "required"})
	}
	if len(i.Comment) > 1000 {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 1000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UnsubmitInput identifies a timesheet to unlock back to draft.
type UnsubmitInput struct {
	TimesheetID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i UnsubmitInput) Validate() error {
	if i.TimesheetID == uuid.Nil {
		return domain.NewValidationError("timesheet_id", "required")
	}
	return nil
}
