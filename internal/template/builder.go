package template

import (
	"time"

	"github.com/google/uuid"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// BuildPlan expands a registered template into dated task and milestone
// instances anchored at startDate. Each task starts at the latest due date of
// its prerequisites (or startDate when it has none) and is due one duration
// later. Tasks come back in declaration order with dependencies rewritten to
// task ids; milestones are offset from startDate independently of tasks.
func (l *Library) BuildPlan(templateID string, startDate time.Time) ([]domain.Task, []domain.Milestone, error) {
	tpl, err := l.Resolve(templateID)
	if err != nil {
		return nil, nil, err
	}

	order, err := topoOrder(tpl.Tasks)
	if err != nil {
		// Registration already validated the graph; a cycle here means the
		// template was mutated after registration.
		return nil, nil, err
	}

	now := time.Now().UTC()
	tasks := make([]domain.Task, len(tpl.Tasks))
	dueByName := make(map[string]time.Time, len(tpl.Tasks))

	for _, i := range order {
		bp := tpl.Tasks[i]
		anchor := startDate
		for _, dep := range bp.DependsOn {
			anchor = domain.MaxTime(anchor, dueByName[dep])
		}
		due := anchor.AddDate(0, 0, bp.DurationDays)
		dueByName[bp.Name] = due

		start := anchor
		tasks[i] = domain.Task{
			ID:             uuid.New().String(),
			Name:           bp.Name,
			Status:         bp.status(),
			Type:           bp.taskType(),
			Priority:       bp.priority(),
			AssigneeID:     bp.AssigneeID,
			LeaderID:       bp.LeaderID,
			StartDate:      &start,
			DueDate:        &due,
			EstimatedHours: bp.EstimatedHours,
			StoryPoints:    bp.StoryPoints,
			Billable:       bp.billable(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	idByName := make(map[string]string, len(tasks))
	for i := range tasks {
		idByName[tasks[i].Name] = tasks[i].ID
	}
	for i, bp := range tpl.Tasks {
		for _, dep := range bp.DependsOn {
			tasks[i].Dependencies = append(tasks[i].Dependencies, idByName[dep])
		}
	}

	milestones := make([]domain.Milestone, 0, len(tpl.Milestones))
	for _, mb := range tpl.Milestones {
		milestones = append(milestones, domain.Milestone{
			ID:        uuid.New().String(),
			Title:     mb.Title,
			DueDate:   startDate.AddDate(0, 0, mb.OffsetDays),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return tasks, milestones, nil
}
