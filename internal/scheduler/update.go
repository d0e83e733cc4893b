package scheduler

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// EditOutcome reports the tasks after a batch of partial edits, plus the ids
// that transitioned into in_progress (manual starts) and into done
// (completions, the cascade trigger) during this batch.
type EditOutcome struct {
	Tasks          []domain.Task
	ManualStartIDs []string
	CompletedIDs   []string
}

// ApplyTaskEdits applies partial edits by task id, returning new task values.
// Unknown ids are skipped, not errors. A status edit into in_progress stamps
// start_date = now only when the edit carries no start date and none exists
// yet; an already-set start date never moves unless explicitly supplied.
func ApplyTaskEdits(tasks []domain.Task, edits []contract.TaskEdit, now time.Time) EditOutcome {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].ID] = i
	}

	var manualStarts, completed []string
	for _, edit := range edits {
		i, ok := index[edit.ID]
		if !ok {
			continue
		}
		base := out[i]
		updated := base

		if edit.Name != nil {
			updated.Name = *edit.Name
		}
		if edit.Status != nil {
			updated.Status = *edit.Status
		}
		if edit.Type != nil {
			updated.Type = *edit.Type
		}
		if edit.Priority != nil {
			updated.Priority = *edit.Priority
		}
		if edit.AssigneeID != nil {
			updated.AssigneeID = *edit.AssigneeID
		}
		if edit.LeaderID != nil {
			updated.LeaderID = *edit.LeaderID
		}
		if edit.StartDate != nil {
			start := *edit.StartDate
			updated.StartDate = &start
		}
		if edit.DueDate != nil {
			due := *edit.DueDate
			updated.DueDate = &due
		}
		if edit.EstimatedHours != nil {
			updated.EstimatedHours = edit.EstimatedHours
		}
		if edit.LoggedHours != nil {
			updated.LoggedHours = *edit.LoggedHours
		}
		if edit.StoryPoints != nil {
			updated.StoryPoints = edit.StoryPoints
		}
		if edit.Billable != nil {
			updated.Billable = *edit.Billable
		}
		if edit.SprintID != nil {
			updated.SprintID = *edit.SprintID
		}

		if edit.Status != nil && *edit.Status == domain.TaskInProgress &&
			base.Status != domain.TaskInProgress &&
			edit.StartDate == nil && base.StartDate == nil {
			stamp := now
			updated.StartDate = &stamp
		}
		updated.UpdatedAt = now

		if base.Status != updated.Status {
			if updated.Status == domain.TaskInProgress {
				manualStarts = append(manualStarts, updated.ID)
			}
			if updated.Status == domain.TaskDone {
				completed = append(completed, updated.ID)
			}
		}
		out[i] = updated
	}

	return EditOutcome{Tasks: out, ManualStartIDs: manualStarts, CompletedIDs: completed}
}

// ApplyMilestoneEdits applies partial overwrites by milestone id; unknown ids
// are skipped.
func ApplyMilestoneEdits(milestones []domain.Milestone, edits []contract.MilestoneEdit, now time.Time) []domain.Milestone {
	out := make([]domain.Milestone, len(milestones))
	copy(out, milestones)

	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].ID] = i
	}

	for _, edit := range edits {
		i, ok := index[edit.ID]
		if !ok {
			continue
		}
		m := out[i]
		if edit.Title != nil {
			m.Title = *edit.Title
		}
		if edit.DueDate != nil {
			m.DueDate = *edit.DueDate
		}
		if edit.Completed != nil {
			m.Completed = *edit.Completed
		}
		m.UpdatedAt = now
		out[i] = m
	}
	return out
}

// ShiftSchedule translates every task start/due date and milestone due date by
// delta. Pure arithmetic: the dependency graph is not consulted.
func ShiftSchedule(tasks []domain.Task, milestones []domain.Milestone, delta time.Duration, now time.Time) ([]domain.Task, []domain.Milestone) {
	outTasks := make([]domain.Task, len(tasks))
	copy(outTasks, tasks)
	for i := range outTasks {
		if outTasks[i].StartDate != nil {
			start := outTasks[i].StartDate.Add(delta)
			outTasks[i].StartDate = &start
		}
		if outTasks[i].DueDate != nil {
			due := outTasks[i].DueDate.Add(delta)
			outTasks[i].DueDate = &due
		}
		outTasks[i].UpdatedAt = now
	}

	outMilestones := make([]domain.Milestone, len(milestones))
	copy(outMilestones, milestones)
	for i := range outMilestones {
		outMilestones[i].DueDate = outMilestones[i].DueDate.Add(delta)
		outMilestones[i].UpdatedAt = now
	}
	return outTasks, outMilestones
}

// ProjectEnd returns the latest due date across tasks and milestones, or nil
// when nothing carries a due date.
func ProjectEnd(tasks []domain.Task, milestones []domain.Milestone) *time.Time {
	var end *time.Time
	consider := func(t time.Time) {
		if end == nil || t.After(*end) {
			v := t
			end = &v
		}
	}
	for i := range tasks {
		if tasks[i].DueDate != nil {
			consider(*tasks[i].DueDate)
		}
	}
	for i := range milestones {
		consider(milestones[i].DueDate)
	}
	return end
}

// DeriveStatus maps task statuses onto the project status: completed when all
// tasks are done, in_progress when any task has moved past todo, otherwise
// planning. A project with no tasks is still planning.
func DeriveStatus(tasks []domain.Task) domain.ProjectStatus {
	if len(tasks) == 0 {
		return domain.ProjectPlanning
	}
	allDone := true
	anyMoved := false
	for i := range tasks {
		switch tasks[i].Status {
		case domain.TaskDone:
			anyMoved = true
		case domain.TaskInProgress, domain.TaskReview:
			anyMoved = true
			allDone = false
		default:
			allDone = false
		}
	}
	if allDone {
		return domain.ProjectCompleted
	}
	if anyMoved {
		return domain.ProjectInProgress
	}
	return domain.ProjectPlanning
}
