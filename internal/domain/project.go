package domain

import (
	"fmt"
	"time"
)

// Project is the aggregate root: it exclusively owns its tasks, milestones and
// sprints. Mutations flow through the update state machine; the aggregate is
// replaced wholesale so end date and status are never stale.
type Project struct {
	ID         string
	Name       string
	Code       string
	ClientID   string
	TemplateID string
	Status     ProjectStatus

	StartDate time.Time
	// EndDate is derived: the latest due date across tasks and milestones,
	// nil when there are none.
	EndDate *time.Time

	ManagerID string
	Budget    *float64
	Currency  string

	Tasks          []Task
	Milestones     []Milestone
	Sprints        []Sprint
	ActiveSprintID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectCode formats a human-readable project code, e.g. WEB-2026-03.
func ProjectCode(prefix string, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%02d", prefix, year, sequence)
}

// TaskByID returns the task with the given id, or nil.
func (p *Project) TaskByID(id string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// ActiveSprint resolves the project's active sprint: the explicit reference
// when set, otherwise the first sprint with active status.
func (p *Project) ActiveSprint() *Sprint {
	if p.ActiveSprintID != "" {
		for i := range p.Sprints {
			if p.Sprints[i].ID == p.ActiveSprintID {
				return &p.Sprints[i]
			}
		}
	}
	for i := range p.Sprints {
		if p.Sprints[i].Status == SprintActive {
			return &p.Sprints[i]
		}
	}
	return nil
}

// CompletedSprints returns sprints that finished with a recorded point total.
func (p *Project) CompletedSprints() []Sprint {
	var done []Sprint
	for _, s := range p.Sprints {
		if s.Status == SprintCompleted && s.CompletedPoints > 0 {
			done = append(done, s)
		}
	}
	return done
}
