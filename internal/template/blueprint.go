package template

import "github.com/kmadrilejo/atelier/internal/domain"

// TaskBlueprint declares one task before any dates exist. Names are unique
// within a template and are how dependencies are expressed.
type TaskBlueprint struct {
	Name           string              `yaml:"name"`
	DurationDays   int                 `yaml:"duration_days"`
	DependsOn      []string            `yaml:"depends_on,omitempty"`
	Status         domain.TaskStatus   `yaml:"status,omitempty"`
	Type           domain.TaskType     `yaml:"type,omitempty"`
	Priority       domain.TaskPriority `yaml:"priority,omitempty"`
	EstimatedHours *float64            `yaml:"estimated_hours,omitempty"`
	StoryPoints    *float64            `yaml:"story_points,omitempty"`
	AssigneeID     string              `yaml:"assignee_id,omitempty"`
	LeaderID       string              `yaml:"leader_id,omitempty"`
	Billable       *bool               `yaml:"billable,omitempty"`
}

// MilestoneBlueprint declares a checkpoint at a fixed offset from project start.
type MilestoneBlueprint struct {
	Title      string `yaml:"title"`
	OffsetDays int    `yaml:"offset_days"`
}

// ProjectTemplate is an immutable, named blueprint for a whole project plan.
type ProjectTemplate struct {
	CodePrefix string               `yaml:"code_prefix"`
	Tasks      []TaskBlueprint      `yaml:"tasks"`
	Milestones []MilestoneBlueprint `yaml:"milestones,omitempty"`
}

func (b TaskBlueprint) status() domain.TaskStatus {
	if b.Status == "" {
		return domain.TaskTodo
	}
	return b.Status
}

func (b TaskBlueprint) taskType() domain.TaskType {
	if b.Type == "" {
		return domain.TypeFeature
	}
	return b.Type
}

func (b TaskBlueprint) priority() domain.TaskPriority {
	if b.Priority == "" {
		return domain.PriorityMedium
	}
	return b.Priority
}

func (b TaskBlueprint) billable() bool {
	if b.Billable == nil {
		return true
	}
	return *b.Billable
}
