package scheduler

import (
	"testing"
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVelocity(t *testing.T) {
	assert.Nil(t, Velocity(nil))

	sprints := []domain.Sprint{
		testutil.NewTestSprint("S1", testutil.WithSprintPoints(10, 8)),
		testutil.NewTestSprint("S2", testutil.WithSprintPoints(10, 12)),
	}

	v := Velocity(sprints)
	require.NotNil(t, v)
	assert.Equal(t, 10.0, *v)
}

func TestForecastCompletion_NilWithoutVelocity(t *testing.T) {
	now := time.Now().UTC()
	assert.Nil(t, ForecastCompletion(now, nil, nil, 10, nil))

	zero := 0.0
	assert.Nil(t, ForecastCompletion(now, nil, nil, 10, &zero))
}

func TestForecastCompletion_FromActiveSprintEnd(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 10)

	active := testutil.NewTestSprint("Active",
		testutil.WithSprintStatus(domain.SprintActive),
		testutil.WithSprintDates(now, end))
	completed := []domain.Sprint{
		testutil.NewTestSprint("Done",
			testutil.WithSprintStatus(domain.SprintCompleted),
			testutil.WithSprintDates(now.AddDate(0, 0, -14), now),
			testutil.WithSprintPoints(10, 10)),
	}
	velocity := 10.0

	// 20 points remaining at 10/sprint of 14 days = 28 days past sprint end.
	forecast := ForecastCompletion(now, &active, completed, 20, &velocity)
	require.NotNil(t, forecast)
	assert.Equal(t, end.AddDate(0, 0, 28), *forecast)
}

func TestForecastCompletion_SprintLengthFloored(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// A 2-day completed sprint would make the forecast absurdly optimistic;
	// the average is floored at a week.
	completed := []domain.Sprint{
		testutil.NewTestSprint("Short",
			testutil.WithSprintStatus(domain.SprintCompleted),
			testutil.WithSprintDates(now.AddDate(0, 0, -2), now),
			testutil.WithSprintPoints(10, 10)),
	}
	velocity := 10.0

	forecast := ForecastCompletion(now, nil, completed, 10, &velocity)
	require.NotNil(t, forecast)
	assert.Equal(t, now.Add(7*24*time.Hour), *forecast)
}

func TestStoryPointTotals(t *testing.T) {
	hours := 10.0
	tasks := []domain.Task{
		testutil.NewTestTask("Pointed", testutil.WithStoryPoints(5)),
		testutil.NewTestTask("Estimated", testutil.WithEstimatedHours(hours),
			testutil.WithTaskStatus(domain.TaskDone)),
		testutil.NewTestTask("Bare"),
	}

	total, completed := StoryPointTotals(tasks)
	// 5 + 10h/4 = 2.5 + 1 fallback.
	assert.Equal(t, 8.5, total)
	assert.Equal(t, 2.5, completed)
}
