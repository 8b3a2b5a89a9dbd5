package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an immutable event record produced by a timesheet state
// transition. Only the read flag ever changes after creation.
type Notification struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        NotificationType
	Title       string
	Message     string
	Read        bool
	TimesheetID *uuid.UUID
	CreatedAt   time.Time
}
