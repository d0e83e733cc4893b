package service

import (
	"context"
	"sort"
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/repository"
	"github.com/kmadrilejo/atelier/internal/scheduler"
)

type insightService struct {
	projects      repository.ProjectRepo
	notifications repository.NotificationRepo
	observer      UseCaseObserver
}

// NewInsightService creates the read-only analytics service.
func NewInsightService(
	projects repository.ProjectRepo,
	notifications repository.NotificationRepo,
	observers ...UseCaseObserver,
) InsightService {
	return &insightService{
		projects:      projects,
		notifications: notifications,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *insightService) Tracker(ctx context.Context, projectID string) (view *contract.TrackerView, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-tracker",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": projectID},
		})
	}()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	timeline := make([]contract.TaskTimelineEntry, 0, len(project.Tasks))
	for i := range project.Tasks {
		task := &project.Tasks[i]
		isLate, willBeLate := scheduler.ClassifyTask(task, now)
		timeline = append(timeline, contract.TaskTimelineEntry{
			TaskID:         task.ID,
			Name:           task.Name,
			Status:         task.Status,
			AssigneeID:     task.AssigneeID,
			StartDate:      task.StartDate,
			DueDate:        task.DueDate,
			EstimatedHours: task.EstimatedHours,
			LoggedHours:    task.LoggedHours,
			Dependencies:   task.Dependencies,
			IsLate:         isLate,
			WillBeLate:     willBeLate,
		})
	}

	alerts, lateCount := scheduler.BuildAlerts(project.Tasks, now)

	notifications, err := s.notifications.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	active := refreshSprintPoints(project.ActiveSprint(), project.Tasks)
	completedSprints := project.CompletedSprints()
	total, completed := scheduler.StoryPointTotals(project.Tasks)
	velocity := scheduler.Velocity(completedSprints)

	return &contract.TrackerView{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Code:        project.Code,
		Status:      project.Status,
		Health:      scheduler.HealthFor(project.Status, lateCount),
		GeneratedAt: now,

		Tasks:         timeline,
		Alerts:        alerts,
		Notifications: notifications,

		ActiveSprint:    active,
		UpcomingSprints: upcomingSprints(project.Sprints, project.ActiveSprintID),
		Backlog:         buildBacklog(project.Tasks),

		TotalStoryPoints:     total,
		CompletedStoryPoints: completed,
		Velocity:             velocity,
		ForecastCompletion:   scheduler.ForecastCompletion(now, active, completedSprints, total-completed, velocity),
	}, nil
}

func (s *insightService) Portfolio(ctx context.Context) (entries []contract.PortfolioEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "portfolio",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"projects": len(entries)},
		})
	}()

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entries = make([]contract.PortfolioEntry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, buildPortfolioEntry(p, now))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

func buildPortfolioEntry(p *domain.Project, now time.Time) contract.PortfolioEntry {
	doneTasks := 0
	for i := range p.Tasks {
		if p.Tasks[i].Status == domain.TaskDone {
			doneTasks++
		}
	}
	lateCount := scheduler.CountLate(p.Tasks, now)

	total, completed := scheduler.StoryPointTotals(p.Tasks)
	pointProgress := 0.0
	if total > 0 {
		pointProgress = completed / total
	}
	progress := pointProgress
	if len(p.Tasks) > 0 {
		progress = float64(doneTasks) / float64(len(p.Tasks))
	}

	entry := contract.PortfolioEntry{
		ProjectID: p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Status:    p.Status,
		ClientID:  p.ClientID,
		Health:    scheduler.HealthFor(p.Status, lateCount),

		TotalTasks:         len(p.Tasks),
		CompletedTasks:     doneTasks,
		LateTasks:          lateCount,
		Progress:           progress,
		StoryPointProgress: pointProgress,

		NextMilestone: nextMilestone(p.Milestones),

		TotalStoryPoints:     total,
		CompletedStoryPoints: completed,

		UpdatedAt: p.UpdatedAt,
	}

	if active := refreshSprintPoints(p.ActiveSprint(), p.Tasks); active != nil {
		entry.ActiveSprintID = active.ID
		entry.ActiveSprintName = active.Name
		entry.SprintCommitted = &active.CommittedPoints
		entry.SprintCompleted = &active.CompletedPoints
	}

	completedSprints := p.CompletedSprints()
	entry.Velocity = scheduler.Velocity(completedSprints)
	entry.ForecastCompletion = scheduler.ForecastCompletion(
		now, p.ActiveSprint(), completedSprints, total-completed, entry.Velocity)

	return entry
}

// refreshSprintPoints recomputes an active sprint's committed and completed
// points from the tasks currently assigned to it, so stored snapshots never go
// stale. Sprints with no assigned tasks keep their stored figures.
func refreshSprintPoints(sprint *domain.Sprint, tasks []domain.Task) *domain.Sprint {
	if sprint == nil {
		return nil
	}
	snapshot := *sprint
	committed, completed := 0.0, 0.0
	assigned := false
	for i := range tasks {
		if tasks[i].SprintID != sprint.ID {
			continue
		}
		assigned = true
		w := tasks[i].StoryPointWeight()
		committed += w
		if tasks[i].Status == domain.TaskDone {
			completed += w
		}
	}
	if assigned {
		snapshot.CommittedPoints = committed
		snapshot.CompletedPoints = completed
	}
	return &snapshot
}

// upcomingSprints lists planning and active sprints other than the resolved
// active one, sorted by start date.
func upcomingSprints(sprints []domain.Sprint, activeID string) []domain.Sprint {
	var upcoming []domain.Sprint
	for _, s := range sprints {
		if s.ID == activeID {
			continue
		}
		if s.Status == domain.SprintPlanning || s.Status == domain.SprintActive {
			upcoming = append(upcoming, s)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	return upcoming
}

func buildBacklog(tasks []domain.Task) contract.BacklogSummary {
	summary := contract.BacklogSummary{
		ByStatus:   make(map[domain.TaskStatus]int, len(domain.AllTaskStatuses)),
		ByPriority: make(map[domain.TaskPriority]int, len(domain.AllTaskPriorities)),
	}
	for _, status := range domain.AllTaskStatuses {
		summary.ByStatus[status] = 0
	}
	for _, priority := range domain.AllTaskPriorities {
		summary.ByPriority[priority] = 0
	}
	for i := range tasks {
		summary.ByStatus[tasks[i].Status]++
		summary.ByPriority[tasks[i].Priority]++
		if tasks[i].SprintID == "" {
			summary.Unscheduled++
		}
	}
	return summary
}

// nextMilestone picks the earliest uncompleted milestone by due date. An
// overdue milestone stays the next one until it is marked completed.
func nextMilestone(milestones []domain.Milestone) *domain.Milestone {
	var next *domain.Milestone
	for i := range milestones {
		m := &milestones[i]
		if m.Completed {
			continue
		}
		if next == nil || m.DueDate.Before(next.DueDate) {
			next = m
		}
	}
	if next == nil {
		return nil
	}
	snapshot := *next
	return &snapshot
}
