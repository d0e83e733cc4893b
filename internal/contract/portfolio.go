package contract

import (
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// PortfolioEntry is one project's row in the cross-project portfolio,
// sorted most-recently-updated first.
type PortfolioEntry struct {
	ProjectID string
	Code      string
	Name      string
	Status    domain.ProjectStatus
	ClientID  string
	Health    domain.ProjectHealth

	TotalTasks     int
	CompletedTasks int
	LateTasks      int
	// Progress prefers the completed-task ratio and falls back to the
	// story-point ratio when the project has no tasks.
	Progress           float64
	StoryPointProgress float64

	NextMilestone *domain.Milestone

	TotalStoryPoints     float64
	CompletedStoryPoints float64
	ActiveSprintID       string
	ActiveSprintName     string
	SprintCommitted      *float64
	SprintCompleted      *float64
	Velocity             *float64
	ForecastCompletion   *time.Time

	UpdatedAt time.Time
}
