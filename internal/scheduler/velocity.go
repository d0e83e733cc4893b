package scheduler

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// minSprintDays floors the average sprint length so an anomalously short
// sprint cannot blow up the forecast.
const minSprintDays = 7.0

// Velocity is the average completed story points across completed sprints,
// nil when no sprint has finished with points.
func Velocity(completedSprints []domain.Sprint) *float64 {
	if len(completedSprints) == 0 {
		return nil
	}
	total := 0.0
	for _, s := range completedSprints {
		total += s.CompletedPoints
	}
	v := total / float64(len(completedSprints))
	return &v
}

// ForecastCompletion projects when the remaining story points will be done:
// baseline (active sprint end, or now) plus averageSprintDays * remaining /
// velocity. Nil unless velocity is positive.
func ForecastCompletion(now time.Time, active *domain.Sprint, completedSprints []domain.Sprint, remainingPoints float64, velocity *float64) *time.Time {
	if velocity == nil || *velocity <= 0 || len(completedSprints) == 0 {
		return nil
	}

	baseline := now
	if active != nil && !active.EndDate.IsZero() {
		baseline = active.EndDate
	}

	totalDays := 0.0
	for _, s := range completedSprints {
		days := s.EndDate.Sub(s.StartDate).Hours() / 24
		if days < minSprintDays {
			days = minSprintDays
		}
		totalDays += days
	}
	avgDays := totalDays / float64(len(completedSprints))
	if avgDays < minSprintDays {
		avgDays = minSprintDays
	}

	projected := avgDays * (remainingPoints / *velocity)
	forecast := baseline.Add(time.Duration(projected * 24 * float64(time.Hour)))
	return &forecast
}

// StoryPointTotals sums story-point weight across tasks and across the done
// subset.
func StoryPointTotals(tasks []domain.Task) (total, completed float64) {
	for i := range tasks {
		w := tasks[i].StoryPointWeight()
		total += w
		if tasks[i].Status == domain.TaskDone {
			completed += w
		}
	}
	return total, completed
}
