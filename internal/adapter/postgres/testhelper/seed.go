package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omnigratum/timetrack-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active employee user. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.RoleEmployee)
}

// SeedAdmin creates an active admin user. Returns a filled domain.User.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.RoleAdmin)
}

func seedUserWithRole(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$" + suffix + "notarealhashnotarealhash",
		Name:         "Test User " + suffix,
		Role:         role,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.PasswordHash, user.Name, string(user.Role), string(user.Status), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedProject creates an active project. Returns a filled domain.Project.
func SeedProject(t *testing.T, pool *pgxpool.Pool) domain.Project {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	desc := "Test project " + suffix
	project := domain.Project{
		ID:          uuid.New(),
		Name:        "project-" + suffix,
		Description: &desc,
		Status:      domain.CatalogStatusActive,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO projects (id, name, description, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		project.ID, project.Name, project.Description, string(project.Status), project.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject insert project: %v", err)
	}

	return project
}

// SeedTask creates an active task under the given project. Returns a filled domain.Task.
func SeedTask(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID) domain.Task {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	task := domain.Task{
		ID:        uuid.New(),
		Name:      "task-" + suffix,
		ProjectID: projectID,
		Status:    domain.CatalogStatusActive,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tasks (id, name, project_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		task.ID, task.Name, task.ProjectID, string(task.Status), task.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTask insert task: %v", err)
	}

	return task
}

// SeedTimeEntry creates a manual time entry for the given user starting at start
// with the given duration. Returns a filled domain.TimeEntry.
func SeedTimeEntry(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, start time.Time, duration time.Duration) domain.TimeEntry {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	start = start.UTC().Truncate(time.Microsecond)
	end := start.Add(duration)
	entry := domain.TimeEntry{
		ID:        uuid.New(),
		UserID:    userID,
		StartTime: start,
		EndTime:   &end,
		Duration:  int64(duration / time.Second),
		EntryType: domain.EntryTypeManual,
		Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO time_entries (id, user_id, start_time, end_time, duration, entry_type, date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.StartTime, entry.EndTime, entry.Duration, string(entry.EntryType), entry.Date, entry.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTimeEntry insert time_entry: %v", err)
	}

	return entry
}

// SeedActiveSession creates an active timer session for the given user.
// Returns a filled domain.TimerSession.
func SeedActiveSession(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, start time.Time) domain.TimerSession {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	start = start.UTC().Truncate(time.Microsecond)
	session := domain.TimerSession{
		ID:            uuid.New(),
		UserID:        userID,
		StartTime:     start,
		LastHeartbeat: start,
		Active:        true,
		Date:          time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO timer_sessions (id, user_id, start_time, last_heartbeat, active, date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.StartTime, session.LastHeartbeat, session.Active, session.Date, session.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActiveSession insert timer_session: %v", err)
	}

	return session
}

// SeedTimesheet creates a timesheet for the given user and week with the given status.
// Returns a filled domain.Timesheet.
func SeedTimesheet(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, week domain.Week, status domain.TimesheetStatus) domain.Timesheet {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	ts := domain.Timesheet{
		ID:        uuid.New(),
		UserID:    userID,
		WeekStart: week.Start,
		WeekEnd:   week.End,
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.TimesheetStatusSubmitted {
		submittedAt := now
		ts.SubmittedAt = &submittedAt
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO timesheets (id, user_id, week_start, week_end, total_hours, status, submitted_at, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ts.ID, ts.UserID, ts.WeekStart, ts.WeekEnd, ts.TotalHours, string(ts.Status), ts.SubmittedAt, ts.Version, ts.CreatedAt, ts.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTimesheet insert timesheet: %v", err)
	}

	return ts
}
