package domain

import "time"

// Task is a dated, mutable instance of a template blueprint within one project.
// Dependencies reference other tasks in the same project by id only.
type Task struct {
	ID       string
	Name     string
	Status   TaskStatus
	Type     TaskType
	Priority TaskPriority

	AssigneeID string
	LeaderID   string

	// StartDate is set exactly once: from the schedule at plan time, or the
	// first time the task enters in_progress.
	StartDate *time.Time
	DueDate   *time.Time

	EstimatedHours *float64
	LoggedHours    float64
	StoryPoints    *float64
	Billable       bool

	Dependencies []string
	SprintID     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoryPointWeight returns the task's weight for progress and velocity math.
// Explicit story points win; otherwise estimated hours convert at 4h per point
// (rounded to a tenth, floored at 1); otherwise every task counts as 1.
func (t *Task) StoryPointWeight() float64 {
	if t.StoryPoints != nil {
		if *t.StoryPoints < 0 {
			return 0
		}
		return *t.StoryPoints
	}
	if t.EstimatedHours != nil && *t.EstimatedHours > 0 {
		points := float64(int(*t.EstimatedHours/4.0*10+0.5)) / 10
		if points < 1.0 {
			return 1.0
		}
		return points
	}
	return 1.0
}

// IsOpen reports whether the task still counts against the schedule.
func (t *Task) IsOpen() bool {
	return t.Status != TaskDone
}

// Milestone is a dated checkpoint independent of the task graph.
type Milestone struct {
	ID        string
	Title     string
	DueDate   time.Time
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sprint groups tasks for velocity statistics only; it never participates in
// dependency scheduling.
type Sprint struct {
	ID              string
	Name            string
	Status          SprintStatus
	StartDate       time.Time
	EndDate         time.Time
	CommittedPoints float64
	CompletedPoints float64
	FocusAreas      []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
