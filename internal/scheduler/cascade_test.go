package scheduler

import (
	"testing"
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoStartReady_DependentStartsWhenAllDepsDone(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B", testutil.WithDependencies(a.ID))

	out, started := AutoStartReady([]domain.Task{a, b}, []string{a.ID}, now)

	require.Len(t, started, 1)
	assert.Equal(t, "B", started[0].Name)
	assert.Equal(t, domain.TaskInProgress, out[1].Status)
}

func TestAutoStartReady_WaitsForAllDependencies(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B") // still todo
	c := testutil.NewTestTask("C", testutil.WithDependencies(a.ID, b.ID))

	out, started := AutoStartReady([]domain.Task{a, b, c}, []string{a.ID}, now)

	assert.Empty(t, started)
	assert.Equal(t, domain.TaskTodo, out[2].Status)
}

func TestAutoStartReady_RequiresCompletionInBatch(t *testing.T) {
	now := time.Now().UTC()
	// Both deps were already done before this batch; the batch completed an
	// unrelated task. Re-submitting must not re-trigger the cascade.
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B", testutil.WithDependencies(a.ID))
	other := testutil.NewTestTask("Other", testutil.WithTaskStatus(domain.TaskDone))

	_, started := AutoStartReady([]domain.Task{a, b, other}, []string{other.ID}, now)

	assert.Empty(t, started)
}

func TestAutoStartReady_NoDepsUsesDeclarationOrder(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B") // no explicit deps, second in declaration order

	out, started := AutoStartReady([]domain.Task{a, b}, []string{a.ID}, now)

	require.Len(t, started, 1)
	assert.Equal(t, "B", started[0].Name)
	assert.Equal(t, domain.TaskInProgress, out[1].Status)
}

func TestAutoStartReady_NoDepsWaitsForAllPriors(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B") // todo, blocks C
	c := testutil.NewTestTask("C")

	out, started := AutoStartReady([]domain.Task{a, b, c}, []string{a.ID}, now)

	// B starts (all priors done), C does not (B is not done).
	require.Len(t, started, 1)
	assert.Equal(t, "B", started[0].Name)
	assert.Equal(t, domain.TaskTodo, out[2].Status)
}

func TestAutoStartReady_FirstTaskNeverAutoStarts(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A")
	done := testutil.NewTestTask("Done", testutil.WithTaskStatus(domain.TaskDone))

	_, started := AutoStartReady([]domain.Task{a, done}, []string{done.ID}, now)

	assert.Empty(t, started)
}

func TestAutoStartReady_NonChainingWithinBatch(t *testing.T) {
	now := time.Now().UTC()
	// A done -> B starts. C depends on B, which only just started, so C must
	// not start in the same batch.
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B", testutil.WithDependencies(a.ID))
	c := testutil.NewTestTask("C")

	out, started := AutoStartReady([]domain.Task{a, b, c}, []string{a.ID}, now)

	require.Len(t, started, 1)
	assert.Equal(t, "B", started[0].Name)
	assert.Equal(t, domain.TaskTodo, out[2].Status)
}

func TestAutoStartReady_PreservesExistingStartDate(t *testing.T) {
	now := time.Now().UTC()
	planned := now.AddDate(0, 0, 10)
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B",
		testutil.WithDependencies(a.ID),
		testutil.WithTaskStartDate(planned))

	out, started := AutoStartReady([]domain.Task{a, b}, []string{a.ID}, now)

	require.Len(t, started, 1)
	assert.Equal(t, planned, *out[1].StartDate)
}

func TestAutoStartReady_StampsStartDateWhenMissing(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B", testutil.WithDependencies(a.ID))

	out, _ := AutoStartReady([]domain.Task{a, b}, []string{a.ID}, now)

	require.NotNil(t, out[1].StartDate)
	assert.Equal(t, now, *out[1].StartDate)
}

func TestAutoStartReady_SkipsNonTodoTasks(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B",
		testutil.WithDependencies(a.ID),
		testutil.WithTaskStatus(domain.TaskReview))

	out, started := AutoStartReady([]domain.Task{a, b}, []string{a.ID}, now)

	assert.Empty(t, started)
	assert.Equal(t, domain.TaskReview, out[1].Status)
}

func TestAutoStartReady_DanglingDepsIgnored(t *testing.T) {
	now := time.Now().UTC()
	// A task whose only dependencies point outside the plan never auto-starts.
	b := testutil.NewTestTask("B", testutil.WithDependencies("ghost-id"))
	done := testutil.NewTestTask("Done", testutil.WithTaskStatus(domain.TaskDone))

	_, started := AutoStartReady([]domain.Task{done, b}, []string{done.ID}, now)

	assert.Empty(t, started)
}

func TestAutoStartReady_InputNotMutated(t *testing.T) {
	now := time.Now().UTC()
	a := testutil.NewTestTask("A", testutil.WithTaskStatus(domain.TaskDone))
	b := testutil.NewTestTask("B", testutil.WithDependencies(a.ID))
	in := []domain.Task{a, b}

	AutoStartReady(in, []string{a.ID}, now)

	assert.Equal(t, domain.TaskTodo, in[1].Status)
}
