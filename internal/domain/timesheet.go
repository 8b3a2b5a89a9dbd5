package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Timesheet is the weekly aggregate of a user's time entries with an approval
// status. Unique per (user, week start). All status transitions go through the
// timesheet service; Version backs optimistic concurrency on review actions.
type Timesheet struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	WeekStart    time.Time
	WeekEnd      time.Time
	TotalHours   float64
	Status       TimesheetStatus
	SubmittedAt  *time.Time
	ReviewedAt   *time.Time
	ReviewedBy   *uuid.UUID
	AdminComment *string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Week is a calendar week in the tracking timezone, Monday through Sunday.
// Start and End are midnight-truncated dates, both inclusive.
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the week containing t, evaluated in loc.
func WeekOf(t time.Time, loc *time.Location) Week {
	t = t.In(loc)
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	// time.Weekday puts Sunday at 0; shift so Monday starts the week.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// DateOf converts an instant to its canonical calendar date: the instant's
// year, month, and day evaluated in loc, rendered at midnight UTC. Canonical
// dates are what the date columns and Week boundaries carry, so day math never
// re-applies a timezone conversion.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekOfDate returns the Monday-start week containing the canonical date.
// Unlike WeekOf it performs no timezone conversion; the input must already be
// a calendar date (DateOf output, a parsed yyyy-mm-dd, or a DATE column value).
func WeekOfDate(date time.Time) Week {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// Contains reports whether the calendar date of t (in the week's location)
// falls inside the week.
func (w Week) Contains(t time.Time) bool {
	y, m, d := t.In(w.Start.Location()).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// HoursFromSeconds converts a duration sum in seconds to decimal hours,
// rounded half-up to two decimals.
func HoursFromSeconds(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}
