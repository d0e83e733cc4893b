package service

import (
	"context"
	"testing"
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/repository"
	"github.com/kmadrilejo/atelier/internal/template"
	"github.com/kmadrilejo/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectFixture struct {
	svc           ProjectService
	projects      *repository.SQLiteProjectRepo
	notifications *repository.SQLiteNotificationRepo
	library       *template.Library
}

func newProjectFixture(t *testing.T) projectFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	notifications := repository.NewSQLiteNotificationRepo(database)
	library := template.NewLibrary(template.BuiltinTemplates())
	svc := NewProjectService(library, projects, testutil.NewTestUoW(database))
	return projectFixture{svc: svc, projects: projects, notifications: notifications, library: library}
}

func taskStatus(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestProjectService_UpdateUnknownProject(t *testing.T) {
	f := newProjectFixture(t)

	_, err := f.svc.Update(context.Background(), "missing", contract.ProjectUpdate{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_SimpleFieldUpdate(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	project := testutil.NewTestProject("Acme Site")
	require.NoError(t, f.projects.Create(ctx, project))

	name := "Acme Site Redesign"
	budget := 25000.0
	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Name:   &name,
		Budget: &budget,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.Name)
	assert.Equal(t, budget, *updated.Budget)
	// Non-structural update keeps the derived status alone.
	assert.Equal(t, domain.ProjectPlanning, updated.Status)

	stored, err := f.projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)
}

func TestProjectService_TaskEditRederivesEndDateAndStatus(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("Design", testutil.WithDueDate(start.AddDate(0, 0, 5)))
	project := testutil.NewTestProject("Acme Site",
		testutil.WithStartDate(start),
		testutil.WithTasks(task))
	require.NoError(t, f.projects.Create(ctx, project))

	// Pushing the only task's due date out must move the project end date.
	newDue := start.AddDate(0, 0, 30)
	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Tasks: []contract.TaskEdit{
			{ID: task.ID, DueDate: &newDue, Status: taskStatus(domain.TaskInProgress)},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, updated.EndDate)
	assert.Equal(t, newDue, *updated.EndDate)
	assert.Equal(t, domain.ProjectInProgress, updated.Status)
}

func TestProjectService_ExplicitStatusWins(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Design")
	project := testutil.NewTestProject("Acme Site", testutil.WithTasks(task))
	require.NoError(t, f.projects.Create(ctx, project))

	onHold := domain.ProjectOnHold
	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Status: &onHold,
		Tasks: []contract.TaskEdit{
			{ID: task.ID, Status: taskStatus(domain.TaskDone)},
		},
	})
	require.NoError(t, err)

	// Task completion would derive completed, but the explicit status wins.
	assert.Equal(t, domain.ProjectOnHold, updated.Status)
}

func TestProjectService_UnknownTaskEditSilentlySkipped(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Design")
	project := testutil.NewTestProject("Acme Site", testutil.WithTasks(task))
	require.NoError(t, f.projects.Create(ctx, project))

	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Tasks: []contract.TaskEdit{
			{ID: "ghost", Status: taskStatus(domain.TaskDone)},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Tasks, 1)
	assert.Equal(t, domain.TaskTodo, updated.Tasks[0].Status)
}

func TestProjectService_ManualStartEmitsConfirmationNotification(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Visual Design")
	project := testutil.NewTestProject("Acme Site", testutil.WithTasks(task))
	require.NoError(t, f.projects.Create(ctx, project))

	_, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Tasks: []contract.TaskEdit{
			{ID: task.ID, Status: taskStatus(domain.TaskInProgress)},
		},
	})
	require.NoError(t, err)

	notifications, err := f.notifications.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	n := notifications[0]
	assert.Equal(t, domain.NotificationStartConfirmation, n.Type)
	assert.Equal(t, "Task 'Visual Design' was marked as in progress. Confirm the kickoff?", n.Message)
	assert.True(t, n.RequiresConfirmation)
	assert.True(t, n.AllowStartDateEdit)
	assert.Equal(t, task.ID, n.TaskID)
}

func TestProjectService_CompletionCascadesAndNotifies(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	first := testutil.NewTestTask("Kickoff", testutil.WithTaskStatus(domain.TaskInProgress))
	second := testutil.NewTestTask("Discovery", testutil.WithDependencies(first.ID))
	project := testutil.NewTestProject("Acme Site", testutil.WithTasks(first, second))
	require.NoError(t, f.projects.Create(ctx, project))

	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Tasks: []contract.TaskEdit{
			{ID: first.ID, Status: taskStatus(domain.TaskDone)},
		},
	})
	require.NoError(t, err)

	got := updated.TaskByID(second.ID)
	require.NotNil(t, got)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	require.NotNil(t, got.StartDate)

	notifications, err := f.notifications.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	n := notifications[0]
	assert.Equal(t, domain.NotificationAutoStarted, n.Type)
	assert.Equal(t, "Task automatically moved to in progress after predecessors completed.", n.Message)
	assert.False(t, n.RequiresConfirmation)
	assert.Equal(t, second.ID, n.TaskID)
}

func TestProjectService_ResubmittingDoneDoesNotReCascade(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	first := testutil.NewTestTask("Kickoff", testutil.WithTaskStatus(domain.TaskDone))
	second := testutil.NewTestTask("Discovery", testutil.WithDependencies(first.ID))
	project := testutil.NewTestProject("Acme Site", testutil.WithTasks(first, second))
	require.NoError(t, f.projects.Create(ctx, project))

	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Tasks: []contract.TaskEdit{
			{ID: first.ID, Status: taskStatus(domain.TaskDone)},
		},
	})
	require.NoError(t, err)

	// No transition happened, so the dependent stays put.
	assert.Equal(t, domain.TaskTodo, updated.TaskByID(second.ID).Status)

	notifications, err := f.notifications.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestProjectService_StartDateShiftTranslatesSchedule(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("Design",
		testutil.WithTaskStartDate(start),
		testutil.WithDueDate(start.AddDate(0, 0, 5)))
	m := testutil.NewTestMilestone("Review", start.AddDate(0, 0, 10))
	project := testutil.NewTestProject("Acme Site",
		testutil.WithStartDate(start),
		testutil.WithTasks(task),
		testutil.WithMilestones(m))
	require.NoError(t, f.projects.Create(ctx, project))

	newStart := start.AddDate(0, 0, 7)
	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		StartDate: &newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, updated.StartDate)
	assert.Equal(t, newStart, *updated.Tasks[0].StartDate)
	assert.Equal(t, newStart.AddDate(0, 0, 5), *updated.Tasks[0].DueDate)
	assert.Equal(t, newStart.AddDate(0, 0, 10), updated.Milestones[0].DueDate)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, newStart.AddDate(0, 0, 10), *updated.EndDate)
}

func TestProjectService_TemplateReapplyRebuildsPlan(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	oldTask := testutil.NewTestTask("Old Task", testutil.WithTaskStatus(domain.TaskDone))
	project := testutil.NewTestProject("Acme Site",
		testutil.WithStartDate(start),
		testutil.WithTemplateID("consulting"),
		testutil.WithTasks(oldTask))
	require.NoError(t, f.projects.Create(ctx, project))

	websiteID := "website"
	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		TemplateID: &websiteID,
	})
	require.NoError(t, err)

	assert.Equal(t, "website", updated.TemplateID)
	// The old plan is gone, fully replaced by the template's.
	assert.Nil(t, updated.TaskByID(oldTask.ID))
	assert.NotEmpty(t, updated.Tasks)
	assert.Equal(t, "Project Kickoff", updated.Tasks[0].Name)
	assert.Equal(t, domain.ProjectPlanning, updated.Status)

	// Identity survives the rebuild.
	assert.Equal(t, project.ID, updated.ID)
	assert.Equal(t, project.Code, updated.Code)
}

func TestProjectService_MilestoneEdit(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	m := testutil.NewTestMilestone("Launch Review", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	project := testutil.NewTestProject("Acme Site", testutil.WithMilestones(m))
	require.NoError(t, f.projects.Create(ctx, project))

	completed := true
	updated, err := f.svc.Update(ctx, project.ID, contract.ProjectUpdate{
		Milestones: []contract.MilestoneEdit{
			{ID: m.ID, Completed: &completed},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Milestones, 1)
	assert.True(t, updated.Milestones[0].Completed)
}
