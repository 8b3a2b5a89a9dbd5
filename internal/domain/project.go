package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups tasks and time entries. Its lifecycle is owned by the
// catalog service; the tracking core only checks existence of references.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description *string
	CreatedBy   *uuid.UUID
	Status      CatalogStatus
	CreatedAt   time.Time
}

// Task belongs to exactly one project.
type Task struct {
	ID          uuid.UUID
	Name        string
	Description *string
	ProjectID   uuid.UUID
	Status      CatalogStatus
	CreatedAt   time.Time
}
