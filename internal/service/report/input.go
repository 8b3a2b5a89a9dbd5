package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// SummaryInput bounds a report. Nil dates leave that side of the range open;
// a nil UserID means the caller themselves (or, for admins, all users).
type SummaryInput struct {
	UserID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// Validate checks all fields and collects all errors.
func (i SummaryInput) Validate() error {
	var errs []domain.FieldError
	if i.UserID != nil && *i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "must not be the zero id"})
	}
	if i.DateFrom != nil && i.DateTo != nil && i.DateTo.Before(*i.DateFrom) {
		errs = append(errs, domain.FieldError{Field: "date_to", Message: "must not be before date_from"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
