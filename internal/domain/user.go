package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHash   string
	Name           string
	Role           Role
	Status         UserStatus
	DefaultProject *uuid.UUID
	DefaultTask    *uuid.UUID
	CreatedAt      time.Time
}

// IsActive returns true if the user may authenticate and track time.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }
