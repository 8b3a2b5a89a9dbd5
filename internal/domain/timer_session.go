package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimerSession is an in-progress, heartbeat-monitored timing interval that has
// not yet been converted into a durable TimeEntry. At most one session with
// Active=true exists per user; the constraint lives in the database, not here.
type TimerSession struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProjectID     *uuid.UUID
	TaskID        *uuid.UUID
	StartTime     time.Time
	LastHeartbeat time.Time
	Active        bool
	Date          time.Time
	CreatedAt     time.Time
}

// IsStale reports whether the session's last heartbeat is older than threshold
// at the given instant. Stale sessions are presumed abandoned and reapable.
func (s *TimerSession) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastHeartbeat) > threshold
}

// DurationSeconds returns the elapsed whole seconds between the session start
// and stop, floored and clamped to zero so clock skew never yields a negative
// duration.
func DurationSeconds(start, stop time.Time) int64 {
	secs := int64(stop.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
