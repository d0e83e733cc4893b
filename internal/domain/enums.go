package domain

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// AllTaskStatuses lists statuses in lifecycle order, used for backlog buckets.
var AllTaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

type TaskType string

const (
	TypeFeature  TaskType = "feature"
	TypeResearch TaskType = "research"
	TypeQA       TaskType = "qa"
	TypeChore    TaskType = "chore"
	TypeBug      TaskType = "bug"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// AllTaskPriorities lists priorities from lowest to highest, used for backlog buckets.
var AllTaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

type SprintStatus string

const (
	SprintPlanning  SprintStatus = "planning"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

type ProjectHealth string

const (
	HealthOnTrack   ProjectHealth = "on_track"
	HealthAtRisk    ProjectHealth = "at_risk"
	HealthBlocked   ProjectHealth = "blocked"
	HealthCompleted ProjectHealth = "completed"
)

type AlertSeverity string

const (
	AlertLate   AlertSeverity = "late"
	AlertAtRisk AlertSeverity = "at_risk"
)

type NotificationType string

const (
	NotificationStartConfirmation NotificationType = "start_confirmation"
	NotificationAutoStarted       NotificationType = "auto_started"
)
