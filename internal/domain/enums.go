package domain

// Role is the authorization role of a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// IsAdmin returns true for the admin role.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// UserStatus marks whether a user account may authenticate.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive:
		return true
	}
	return false
}

// CatalogStatus is the lifecycle state of a project or task.
// Archived items stay referenced by historical entries but reject new tracking.
type CatalogStatus string

const (
	CatalogStatusActive   CatalogStatus = "active"
	CatalogStatusArchived CatalogStatus = "archived"
)

func (s CatalogStatus) String() string { return string(s) }

func (s CatalogStatus) IsValid() bool {
	switch s {
	case CatalogStatusActive, CatalogStatusArchived:
		return true
	}
	return false
}

// EntryType distinguishes timer-derived entries from manually created ones.
type EntryType string

const (
	EntryTypeTimer  EntryType = "timer"
	EntryTypeManual EntryType = "manual"
)

func (t EntryType) String() string { return string(t) }

func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeTimer, EntryTypeManual:
		return true
	}
	return false
}

// TimesheetStatus is the approval state of a weekly timesheet.
type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "draft"
	TimesheetStatusSubmitted TimesheetStatus = "submitted"
	TimesheetStatusApproved  TimesheetStatus = "approved"
	TimesheetStatusDenied    TimesheetStatus = "denied"
)

func (s TimesheetStatus) String() string { return string(s) }

func (s TimesheetStatus) IsValid() bool {
	switch s {
	case TimesheetStatusDraft, TimesheetStatusSubmitted, TimesheetStatusApproved, TimesheetStatusDenied:
		return true
	}
	return false
}

// IsFrozen reports whether entries of the timesheet's week are edit-locked.
// A submitted or approved week only changes through an admin unlock.
func (s TimesheetStatus) IsFrozen() bool {
	return s == TimesheetStatusSubmitted || s == TimesheetStatusApproved
}

// NotificationType identifies the timesheet transition that produced a notification.
type NotificationType string

const (
	NotificationTimesheetSubmitted NotificationType = "timesheet_submitted"
	NotificationTimesheetApproved  NotificationType = "timesheet_approved"
	NotificationTimesheetDenied    NotificationType = "timesheet_denied"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTimesheetSubmitted, NotificationTimesheetApproved, NotificationTimesheetDenied:
		return true
	}
	return false
}
