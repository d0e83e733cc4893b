package contract

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// TaskEdit is a partial update to one task; nil fields are left untouched.
// Edits referencing unknown task ids are silently skipped.
type TaskEdit struct {
	ID             string
	Name           *string
	Status         *domain.TaskStatus
	Type           *domain.TaskType
	Priority       *domain.TaskPriority
	AssigneeID     *string
	LeaderID       *string
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
	LoggedHours    *float64
	StoryPoints    *float64
	Billable       *bool
	SprintID       *string
}

// MilestoneEdit is a partial update to one milestone by id; unknown ids are
// silently skipped.
type MilestoneEdit struct {
	ID        string
	Title     *string
	DueDate   *time.Time
	Completed *bool
}

// ProjectUpdate is the single mutation entry point for a project. TemplateID
// rebuilds the whole plan, StartDate shifts every scheduled date by the delta,
// and the edit lists apply partial overwrites. An explicit Status always wins
// over the derived one.
type ProjectUpdate struct {
	Name           *string
	Status         *domain.ProjectStatus
	StartDate      *time.Time
	TemplateID     *string
	ManagerID      *string
	Budget         *float64
	Currency       *string
	ActiveSprintID *string
	Tasks          []TaskEdit
	Milestones     []MilestoneEdit
}

// HasStructuralChange reports whether the update touches tasks, milestones or
// the schedule, which forces end-date and status rederivation.
func (u *ProjectUpdate) HasStructuralChange() bool {
	return u.TemplateID != nil || u.StartDate != nil || u.Tasks != nil || u.Milestones != nil
}
