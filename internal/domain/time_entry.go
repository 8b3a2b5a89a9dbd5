package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is a closed, durable record of worked time, manual or timer-derived.
// For timer entries Duration always equals EndTime − StartTime at finalize
// time. Manual entries may carry a duration with no end time.
type TimeEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID *uuid.UUID
	TaskID    *uuid.UUID
	StartTime time.Time
	EndTime   *time.Time
	Duration  int64 // seconds, always >= 0
	EntryType EntryType
	Date      time.Time
	Notes     *string
	CreatedAt time.Time
}

// EntryFilter narrows an entry listing. Nil fields are not applied.
type EntryFilter struct {
	UserID    *uuid.UUID
	ProjectID *uuid.UUID
	TaskID    *uuid.UUID
	DateFrom  *time.Time // inclusive, compared against the entry's date
	DateTo    *time.Time // inclusive
	Limit     int
	Offset    int
}

// ProjectSum is one row of a per-project time aggregation.
// ProjectID and ProjectName are nil for entries tracked without a project.
type ProjectSum struct {
	ProjectID   *uuid.UUID
	ProjectName *string
	EntryCount  int64
	TotalSecs   int64
}

// EffectiveEnd returns the end of the entry's interval: the stored end time, or
// start + duration when the end was left absent. Used for overlap checks.
func (e *TimeEntry) EffectiveEnd() time.Time {
	if e.EndTime != nil {
		return *e.EndTime
	}
	return e.StartTime.Add(time.Duration(e.Duration) * time.Second)
}

// Overlaps reports whether two half-open intervals [start, end) intersect.
func (e *TimeEntry) Overlaps(start, end time.Time) bool {
	return e.StartTime.Before(end) && start.Before(e.EffectiveEnd())
}
