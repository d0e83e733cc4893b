package contract

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// TaskAlert flags a late or at-risk task with a human message.
type TaskAlert struct {
	TaskID   string
	TaskName string
	Severity domain.AlertSeverity
	DueDate  *time.Time
	Message  string
}

// TaskTimelineEntry is one task's row in the tracker timeline.
type TaskTimelineEntry struct {
	TaskID         string
	Name           string
	Status         domain.TaskStatus
	AssigneeID     string
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
	LoggedHours    float64
	Dependencies   []string
	IsLate         bool
	WillBeLate     bool
}

// BacklogSummary buckets a project's tasks by status and priority and counts
// tasks not assigned to any sprint.
type BacklogSummary struct {
	ByStatus    map[domain.TaskStatus]int
	ByPriority  map[domain.TaskPriority]int
	Unscheduled int
}

// TrackerView is the read-only per-project timeline with alerts, pending
// notifications and sprint statistics.
type TrackerView struct {
	ProjectID   string
	ProjectName string
	Code        string
	Status      domain.ProjectStatus
	Health      domain.ProjectHealth
	GeneratedAt time.Time

	Tasks         []TaskTimelineEntry
	Alerts        []TaskAlert
	Notifications []domain.TaskNotification

	ActiveSprint    *domain.Sprint
	UpcomingSprints []domain.Sprint
	Backlog         BacklogSummary

	TotalStoryPoints     float64
	CompletedStoryPoints float64
	Velocity             *float64
	ForecastCompletion   *time.Time
}
