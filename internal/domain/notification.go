package domain

import "time"

// NotificationCap bounds the notification log; the oldest entries are evicted
// first when an append would exceed it.
const NotificationCap = 200

// TaskNotification records a manual or automatic task start. The log is
// append-only and bounded; it is not a source of truth.
type TaskNotification struct {
	ID                   string
	ProjectID            string
	ProjectName          string
	TaskID               string
	TaskName             string
	Type                 NotificationType
	Message              string
	TriggeredAt          time.Time
	RequiresConfirmation bool
	AllowStartDateEdit   bool
	SuggestedStartDate   time.Time
}
