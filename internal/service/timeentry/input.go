package timeentry

import (
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

const maxNotesLen = 2000

// CreateInput describes a manual entry. Either EndTime or DurationSecs must be
// present; when both are given they have to agree within the configured
// tolerance. Override lets admins record over an existing interval.
type CreateInput struct {
	ProjectID    *uuid.UUID
	TaskID       *uuid.UUID
	StartTime    time.Time
	EndTime      *time.Time
	DurationSecs *int64
	Notes        *string
	Override     bool
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError
	if i.StartTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_time", Message: "required"})
	}
	if i.EndTime == nil && i.DurationSecs == nil {
		errs = append(errs, domain.FieldError{Field: "end_time", Message: "end_time or duration_secs is required"})
	}
	if i.EndTime != nil && !i.StartTime.IsZero() && !i.EndTime.After(i.StartTime) {
		errs = append(errs, domain.FieldError{Field: "end_time", Message: "must be after start_time"})
	}
	if i.DurationSecs != nil && *i.DurationSecs <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_secs", Message: "must be > 0"})
	}
	if i.TaskID != nil && i.ProjectID == nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "requires project_id"})
	}
	if i.Notes != nil && len(*i.Notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput carries a partial edit of an existing entry. Nil fields keep
// their current value; clearing a reference or the notes is not supported.
// Unlock lets an admin edit a frozen week, reopening its timesheet to draft.
type UpdateInput struct {
	EntryID      uuid.UUID
	ProjectID    *uuid.UUID
	TaskID       *uuid.UUID
	StartTime    *time.Time
	EndTime      *time.Time
	DurationSecs *int64
	Notes        *string
	Override     bool
	Unlock       bool
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError
	if i.EntryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "entry_id", Message: "required"})
	}
	if i.StartTime != nil && i.StartTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_time", Message: "must not be empty"})
	}
	if i.DurationSecs != nil && *i.DurationSecs <= 0 {
		errs = append(errs, domain.FieldError{Field: "duration_secs", Message: "must be > 0"})
	}
	if i.Notes != nil && len(*i.Notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteInput identifies the entry to remove. Unlock lets an admin delete from
// a frozen week, reopening its timesheet to draft.
type DeleteInput struct {
	EntryID uuid.UUID
	Unlock  bool
}

// Validate checks all fields and collects all errors.
func (i DeleteInput) Validate() error {
	if i.EntryID == uuid.Nil {
		return domain.NewValidationError("entry_id", "required")
	}
	return nil
}

// ListInput narrows the entry listing. Non-admins may only list their own
// entries.
type ListInput struct {
	UserID    *uuid.UUID
	ProjectID *uuid.UUID
	TaskID    *uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
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
	if i.DateFrom != nil && i.DateTo != nil && i.DateTo.Before(*i.DateFrom) {
		errs = append(errs, domain.FieldError{Field: "date_to", Message: "must not be before date_from"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
