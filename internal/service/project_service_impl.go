package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/db"
	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/repository"
	"github.com/kmadrilejo/atelier/internal/scheduler"
	"github.com/kmadrilejo/atelier/internal/template"
)

type projectService struct {
	library  *template.Library
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewProjectService creates the project read/update service.
func NewProjectService(
	library *template.Library,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		library:  library,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// Update applies one atomic mutation to a project: optional template
// reapplication or start-date shift, partial task and milestone edits, the
// auto-start cascade, notification emission, and end-date/status
// rederivation. "now" is captured once so every stamped date in the batch
// agrees.
func (s *projectService) Update(ctx context.Context, projectID string, update contract.ProjectUpdate) (result *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": projectID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "update-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := *project
	tasks := project.Tasks
	milestones := project.Milestones

	startDate := domain.TimeFromPtrWithDefault(project.StartDate, update.StartDate)

	switch {
	case update.TemplateID != nil:
		// Reapplying a template rebuilds the whole plan; only the project's
		// identity survives.
		tasks, milestones, err = s.library.BuildPlan(*update.TemplateID, startDate)
		if err != nil {
			return nil, err
		}
		updated.TemplateID = *update.TemplateID
		updated.StartDate = startDate
	case update.StartDate != nil:
		if delta := update.StartDate.Sub(project.StartDate); delta != 0 {
			tasks, milestones = scheduler.ShiftSchedule(tasks, milestones, delta, now)
		}
		updated.StartDate = *update.StartDate
	}

	var manualStartIDs, completedIDs []string
	if update.Tasks != nil {
		outcome := scheduler.ApplyTaskEdits(tasks, update.Tasks, now)
		tasks = outcome.Tasks
		manualStartIDs = outcome.ManualStartIDs
		completedIDs = outcome.CompletedIDs
	}

	var autoStarted []domain.Task
	if len(completedIDs) > 0 {
		tasks, autoStarted = scheduler.AutoStartReady(tasks, completedIDs, now)
	}

	if update.Milestones != nil {
		milestones = scheduler.ApplyMilestoneEdits(milestones, update.Milestones, now)
	}

	if update.Name != nil {
		updated.Name = *update.Name
	}
	if update.ManagerID != nil {
		updated.ManagerID = *update.ManagerID
	}
	if update.Budget != nil {
		updated.Budget = update.Budget
	}
	if update.Currency != nil {
		updated.Currency = *update.Currency
	}
	if update.ActiveSprintID != nil {
		updated.ActiveSprintID = *update.ActiveSprintID
	}

	if update.HasStructuralChange() || len(autoStarted) > 0 {
		updated.Tasks = tasks
		updated.Milestones = milestones
		updated.EndDate = scheduler.ProjectEnd(tasks, milestones)
		if update.Status == nil {
			updated.Status = scheduler.DeriveStatus(tasks)
		}
	}
	if update.Status != nil {
		// An explicit status always wins over the derived one.
		updated.Status = *update.Status
	}
	updated.UpdatedAt = now

	notifications := buildStartNotifications(&updated, tasks, manualStartIDs, autoStarted, now)
	fields["manual_starts"] = len(manualStartIDs)
	fields["auto_starts"] = len(autoStarted)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txNotifications := repository.NewSQLiteNotificationRepo(tx)
		if err := txProjects.Save(ctx, &updated); err != nil {
			return err
		}
		for i := range notifications {
			if err := txNotifications.Append(ctx, &notifications[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func buildStartNotifications(p *domain.Project, tasks []domain.Task, manualStartIDs []string, autoStarted []domain.Task, now time.Time) []domain.TaskNotification {
	byID := make(map[string]*domain.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	var notifications []domain.TaskNotification
	for _, id := range manualStartIDs {
		task, ok := byID[id]
		if !ok {
			continue
		}
		notifications = append(notifications, domain.TaskNotification{
			ID:          uuid.New().String(),
			ProjectID:   p.ID,
			ProjectName: p.Name,
			TaskID:      task.ID,
			TaskName:    task.Name,
			Type:        domain.NotificationStartConfirmation,
			Message: fmt.Sprintf("Task '%s' was marked as in progress. Confirm the kickoff?",
				task.Name),
			TriggeredAt:          now,
			RequiresConfirmation: true,
			AllowStartDateEdit:   true,
			SuggestedStartDate:   domain.TimeFromPtrWithDefault(now, task.StartDate),
		})
	}
	for i := range autoStarted {
		task := &autoStarted[i]
		notifications = append(notifications, domain.TaskNotification{
			ID:                   uuid.New().String(),
			ProjectID:            p.ID,
			ProjectName:          p.Name,
			TaskID:               task.ID,
			TaskName:             task.Name,
			Type:                 domain.NotificationAutoStarted,
			Message:              "Task automatically moved to in progress after predecessors completed.",
			TriggeredAt:          now,
			RequiresConfirmation: false,
			AllowStartDateEdit:   true,
			SuggestedStartDate:   domain.TimeFromPtrWithDefault(now, task.StartDate),
		})
	}
	return notifications
}
