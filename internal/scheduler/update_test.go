package scheduler

import (
	"testing"
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string                          { return &s }
func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestApplyTaskEdits_PartialOverwrite(t *testing.T) {
	now := time.Now().UTC()
	task := testutil.NewTestTask("Design", testutil.WithPriority(domain.PriorityLow))

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: task.ID, Name: strPtr("Design v2"), AssigneeID: strPtr("ana")},
	}, now)

	got := outcome.Tasks[0]
	assert.Equal(t, "Design v2", got.Name)
	assert.Equal(t, "ana", got.AssigneeID)
	// Untouched fields survive.
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, now, got.UpdatedAt)
}

func TestApplyTaskEdits_UnknownIDSkipped(t *testing.T) {
	now := time.Now().UTC()
	task := testutil.NewTestTask("Design")

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: "ghost", Name: strPtr("Renamed")},
	}, now)

	assert.Equal(t, "Design", outcome.Tasks[0].Name)
	assert.Empty(t, outcome.ManualStartIDs)
	assert.Empty(t, outcome.CompletedIDs)
}

func TestApplyTaskEdits_StartTransitionStampsDate(t *testing.T) {
	now := time.Now().UTC()
	task := testutil.NewTestTask("Design")

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: task.ID, Status: statusPtr(domain.TaskInProgress)},
	}, now)

	got := outcome.Tasks[0]
	require.NotNil(t, got.StartDate)
	assert.Equal(t, now, *got.StartDate)
	assert.Equal(t, []string{task.ID}, outcome.ManualStartIDs)
}

func TestApplyTaskEdits_StartTransitionKeepsScheduledDate(t *testing.T) {
	now := time.Now().UTC()
	scheduled := now.AddDate(0, 0, 5)
	task := testutil.NewTestTask("Design", testutil.WithTaskStartDate(scheduled))

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: task.ID, Status: statusPtr(domain.TaskInProgress)},
	}, now)

	assert.Equal(t, scheduled, *outcome.Tasks[0].StartDate)
}

func TestApplyTaskEdits_ExplicitStartDateWins(t *testing.T) {
	now := time.Now().UTC()
	explicit := now.AddDate(0, 0, 3)
	task := testutil.NewTestTask("Design")

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: task.ID, Status: statusPtr(domain.TaskInProgress), StartDate: &explicit},
	}, now)

	assert.Equal(t, explicit, *outcome.Tasks[0].StartDate)
}

func TestApplyTaskEdits_CompletionRecorded(t *testing.T) {
	now := time.Now().UTC()
	task := testutil.NewTestTask("Design", testutil.WithTaskStatus(domain.TaskInProgress))

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: task.ID, Status: statusPtr(domain.TaskDone)},
	}, now)

	assert.Equal(t, []string{task.ID}, outcome.CompletedIDs)
}

func TestApplyTaskEdits_RemarkingDoneIsNotATransition(t *testing.T) {
	now := time.Now().UTC()
	task := testutil.NewTestTask("Design", testutil.WithTaskStatus(domain.TaskDone))

	outcome := ApplyTaskEdits([]domain.Task{task}, []contract.TaskEdit{
		{ID: task.ID, Status: statusPtr(domain.TaskDone)},
	}, now)

	// Idempotent edits must not re-trigger the cascade.
	assert.Empty(t, outcome.CompletedIDs)
}

func TestApplyMilestoneEdits(t *testing.T) {
	now := time.Now().UTC()
	m := testutil.NewTestMilestone("Launch Review", now.AddDate(0, 0, 14))
	completed := true

	out := ApplyMilestoneEdits([]domain.Milestone{m}, []contract.MilestoneEdit{
		{ID: m.ID, Completed: &completed},
		{ID: "ghost", Title: strPtr("ignored")},
	}, now)

	assert.True(t, out[0].Completed)
	assert.Equal(t, "Launch Review", out[0].Title)
}

func TestShiftSchedule_TranslatesAllDates(t *testing.T) {
	now := time.Now().UTC()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 5)
	delta := 7 * 24 * time.Hour

	task := testutil.NewTestTask("Design",
		testutil.WithTaskStartDate(start),
		testutil.WithDueDate(due))
	noDates := testutil.NewTestTask("Backlog Item")
	m := testutil.NewTestMilestone("Review", start.AddDate(0, 0, 10))

	tasks, milestones := ShiftSchedule([]domain.Task{task, noDates}, []domain.Milestone{m}, delta, now)

	assert.Equal(t, start.Add(delta), *tasks[0].StartDate)
	assert.Equal(t, due.Add(delta), *tasks[0].DueDate)
	assert.Nil(t, tasks[1].StartDate)
	assert.Equal(t, m.DueDate.Add(delta), milestones[0].DueDate)
}

func TestProjectEnd(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("latest across tasks and milestones", func(t *testing.T) {
		task := testutil.NewTestTask("Design", testutil.WithDueDate(start.AddDate(0, 0, 5)))
		m := testutil.NewTestMilestone("Handover", start.AddDate(0, 0, 20))

		end := ProjectEnd([]domain.Task{task}, []domain.Milestone{m})
		require.NotNil(t, end)
		assert.Equal(t, m.DueDate, *end)
	})

	t.Run("nil when nothing is dated", func(t *testing.T) {
		task := testutil.NewTestTask("Design")
		assert.Nil(t, ProjectEnd([]domain.Task{task}, nil))
	})
}

func TestDeriveStatus(t *testing.T) {
	todo := testutil.NewTestTask("A")
	inProgress := testutil.NewTestTask("B", testutil.WithTaskStatus(domain.TaskInProgress))
	review := testutil.NewTestTask("C", testutil.WithTaskStatus(domain.TaskReview))
	done := testutil.NewTestTask("D", testutil.WithTaskStatus(domain.TaskDone))

	assert.Equal(t, domain.ProjectPlanning, DeriveStatus(nil))
	assert.Equal(t, domain.ProjectPlanning, DeriveStatus([]domain.Task{todo}))
	assert.Equal(t, domain.ProjectInProgress, DeriveStatus([]domain.Task{todo, inProgress}))
	assert.Equal(t, domain.ProjectInProgress, DeriveStatus([]domain.Task{todo, review}))
	assert.Equal(t, domain.ProjectInProgress, DeriveStatus([]domain.Task{todo, done}))
	assert.Equal(t, domain.ProjectCompleted, DeriveStatus([]domain.Task{done}))
}
