package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Timer        *TimerHandler
	Entry        *EntryHandler
	Timesheet    *TimesheetHandler
	Catalog      *CatalogHandler
	User         *UserHandler
	Notification *NotificationHandler
	Report       *ReportHandler
}

// NewRouter mounts all API routes on a ServeMux. Authentication and the rest
// of the middleware chain wrap the returned mux at the server level.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("GET /me", h.Auth.Me)
	mux.HandleFunc("PUT /me/defaults", h.Auth.UpdateDefaults)

	mux.HandleFunc("POST /timer/start", h.Timer.Start)
	mux.HandleFunc("POST /timer/heartbeat", h.Timer.Heartbeat)
	mux.HandleFunc("POST /timer/stop", h.Timer.Stop)
	mux.HandleFunc("GET /timer/active", h.Timer.Active)

	mux.HandleFunc("POST /entries", h.Entry.Create)
	mux.HandleFunc("GET /entries", h.Entry.List)
	mux.HandleFunc("GET /entries/{id}", h.Entry.Get)
	mux.HandleFunc("PUT /entries/{id}", h.Entry.Update)
	mux.HandleFunc("DELETE /entries/{id}", h.Entry.Delete)

	mux.HandleFunc("GET /timesheets", h.Timesheet.List)
	mux.HandleFunc("GET /timesheets/week", h.Timesheet.Get)
	mux.HandleFunc("GET /timesheets/pending", h.Timesheet.Pending)
	mux.HandleFunc("POST /timesheets/submit", h.Timesheet.Submit)
	mux.HandleFunc("POST /timesheets/{id}/approve", h.Timesheet.Approve)
	mux.HandleFunc("POST /timesheets/{id}/deny", h.Timesheet.Deny)
	mux.HandleFunc("POST /timesheets/{id}/unsubmit", h.Timesheet.Unsubmit)

	mux.HandleFunc("GET /projects", h.Catalog.ListProjects)
	mux.HandleFunc("POST /projects", h.Catalog.CreateProject)
	mux.HandleFunc("GET /projects/{id}", h.Catalog.GetProject)
	mux.HandleFunc("PUT /projects/{id}", h.Catalog.UpdateProject)
	mux.HandleFunc("PUT /projects/{id}/status", h.Catalog.SetProjectStatus)
	mux.HandleFunc("GET /projects/{id}/tasks", h.Catalog.ListTasks)
	mux.HandleFunc("POST /projects/{id}/tasks", h.Catalog.CreateTask)
	mux.HandleFunc("PUT /tasks/{id}", h.Catalog.UpdateTask)
	mux.HandleFunc("PUT /tasks/{id}/status", h.Catalog.SetTaskStatus)

	mux.HandleFunc("POST /users", h.User.Create)
	mux.HandleFunc("GET /users", h.User.List)
	mux.HandleFunc("PUT /users/{id}/status", h.User.SetStatus)

	mux.HandleFunc("GET /notifications", h.Notification.List)
	mux.HandleFunc("GET /notifications/unread-count", h.Notification.UnreadCount)
	mux.HandleFunc("POST /notifications/{id}/read", h.Notification.MarkRead)
	mux.HandleFunc("POST /notifications/read-all", h.Notification.MarkAllRead)

	mux.HandleFunc("GET /reports", h.Report.Summary)

	return mux
}
