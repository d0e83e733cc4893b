package scheduler

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// AutoStartReady cascades "ready to start" state after the completions in
// completedIDs. A todo task with explicit prerequisites starts when all of
// them are done and at least one completed in this batch; a todo task without
// prerequisites starts when it is not the first task and every task declared
// before it is done, again with at least one of those completions in this
// batch. The batch requirement keeps re-submitting the same edit from
// re-triggering tasks whose prerequisites were already satisfied.
//
// Returns the updated task list (original order) and the tasks that started.
func AutoStartReady(tasks []domain.Task, completedIDs []string, now time.Time) ([]domain.Task, []domain.Task) {
	if len(completedIDs) == 0 {
		return tasks, nil
	}

	completed := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	byID := make(map[string]*domain.Task, len(out))
	for i := range out {
		byID[out[i].ID] = &out[i]
	}

	var started []domain.Task
	for i := range out {
		task := &out[i]
		if task.Status != domain.TaskTodo {
			continue
		}

		if len(task.Dependencies) > 0 {
			eligible := true
			inBatch := false
			found := 0
			for _, depID := range task.Dependencies {
				dep, ok := byID[depID]
				if !ok {
					continue
				}
				found++
				if dep.Status != domain.TaskDone {
					eligible = false
					break
				}
				if completed[depID] {
					inBatch = true
				}
			}
			if !eligible || found == 0 || !inBatch {
				continue
			}
		} else {
			// The first declared task never auto-starts; it is the plan's
			// entry point and a human kicks it off.
			if i == 0 {
				continue
			}
			inBatch := false
			allPriorDone := true
			for j := 0; j < i; j++ {
				if completed[out[j].ID] {
					inBatch = true
				}
				if out[j].Status != domain.TaskDone {
					allPriorDone = false
				}
			}
			if !inBatch || !allPriorDone {
				continue
			}
		}

		task.Status = domain.TaskInProgress
		if task.StartDate == nil {
			stamp := now
			task.StartDate = &stamp
		}
		task.UpdatedAt = now
		started = append(started, *task)
	}

	return out, started
}
