package scheduler

import (
	"fmt"
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// atRiskWindow is how close a due date may get before an open task is flagged.
const atRiskWindow = 48 * time.Hour

// ClassifyTask reports whether a task is late (due date passed, not done) or
// at risk (open, due within the window, not yet late).
func ClassifyTask(task *domain.Task, now time.Time) (isLate, willBeLate bool) {
	if task.DueDate == nil {
		return false, false
	}
	isLate = task.DueDate.Before(now) && task.Status != domain.TaskDone
	willBeLate = !isLate &&
		task.Status != domain.TaskDone &&
		task.DueDate.Sub(now) <= atRiskWindow
	return isLate, willBeLate
}

// BuildAlerts classifies every task and produces late/at-risk alerts with
// elapsed or remaining time in the message. Returns the alerts and the number
// of late tasks.
func BuildAlerts(tasks []domain.Task, now time.Time) ([]contract.TaskAlert, int) {
	var alerts []contract.TaskAlert
	late := 0
	for i := range tasks {
		task := &tasks[i]
		isLate, willBeLate := ClassifyTask(task, now)
		switch {
		case isLate:
			late++
			daysOverdue := int(now.Sub(*task.DueDate).Hours() / 24)
			msg := fmt.Sprintf("Task '%s' is overdue.", task.Name)
			if daysOverdue > 0 {
				msg = fmt.Sprintf("Task '%s' is overdue by %d day(s).", task.Name, daysOverdue)
			}
			alerts = append(alerts, contract.TaskAlert{
				TaskID:   task.ID,
				TaskName: task.Name,
				Severity: domain.AlertLate,
				DueDate:  task.DueDate,
				Message:  msg,
			})
		case willBeLate:
			hoursLeft := int(task.DueDate.Sub(now).Hours())
			alerts = append(alerts, contract.TaskAlert{
				TaskID:   task.ID,
				TaskName: task.Name,
				Severity: domain.AlertAtRisk,
				DueDate:  task.DueDate,
				Message:  fmt.Sprintf("Task '%s' is at risk of slipping (due in %d hour(s)).", task.Name, hoursLeft),
			})
		}
	}
	return alerts, late
}

// HealthFor derives the risk classification: project status dominates, then
// lateness.
func HealthFor(status domain.ProjectStatus, lateTasks int) domain.ProjectHealth {
	switch {
	case status == domain.ProjectCompleted:
		return domain.HealthCompleted
	case status == domain.ProjectOnHold:
		return domain.HealthBlocked
	case lateTasks > 0:
		return domain.HealthAtRisk
	default:
		return domain.HealthOnTrack
	}
}

// CountLate returns how many tasks are late as of now.
func CountLate(tasks []domain.Task, now time.Time) int {
	late := 0
	for i := range tasks {
		if isLate, _ := ClassifyTask(&tasks[i], now); isLate {
			late++
		}
	}
	return late
}
