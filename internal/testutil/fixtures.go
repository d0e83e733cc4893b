package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kmadrilejo/atelier/internal/domain"
)

var testCodeCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = d
	}
}

func WithTemplateID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.TemplateID = id
	}
}

func WithTasks(tasks ...domain.Task) ProjectOption {
	return func(p *domain.Project) {
		p.Tasks = tasks
	}
}

func WithMilestones(milestones ...domain.Milestone) ProjectOption {
	return func(p *domain.Project) {
		p.Milestones = milestones
	}
}

func WithSprints(sprints ...domain.Sprint) ProjectOption {
	return func(p *domain.Project) {
		p.Sprints = sprints
	}
}

func WithActiveSprintID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ActiveSprintID = id
	}
}

func WithBudget(amount float64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = &amount
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		Name:       name,
		Code:       domain.ProjectCode("TST", now.Year(), int(testCodeCounter.Add(1))),
		ClientID:   "client-test",
		TemplateID: "website",
		Status:     domain.ProjectPlanning,
		StartDate:  now.AddDate(0, 0, -7),
		ManagerID:  "manager-test",
		Currency:   "USD",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithDependencies(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = ids
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithTaskStartDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = &d
	}
}

func WithStoryPoints(points float64) TaskOption {
	return func(t *domain.Task) {
		t.StoryPoints = &points
	}
}

func WithEstimatedHours(hours float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = &hours
	}
}

func WithSprintID(id string) TaskOption {
	return func(t *domain.Task) {
		t.SprintID = id
	}
}

func NewTestTask(name string, opts ...TaskOption) domain.Task {
	now := time.Now().UTC()
	t := domain.Task{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.TaskTodo,
		Type:      domain.TypeFeature,
		Priority:  domain.PriorityMedium,
		Billable:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Sprint options
type SprintOption func(*domain.Sprint)

func WithSprintStatus(s domain.SprintStatus) SprintOption {
	return func(sp *domain.Sprint) {
		sp.Status = s
	}
}

func WithSprintDates(start, end time.Time) SprintOption {
	return func(sp *domain.Sprint) {
		sp.StartDate = start
		sp.EndDate = end
	}
}

func WithSprintPoints(committed, completed float64) SprintOption {
	return func(sp *domain.Sprint) {
		sp.CommittedPoints = committed
		sp.CompletedPoints = completed
	}
}

func NewTestSprint(name string, opts ...SprintOption) domain.Sprint {
	now := time.Now().UTC()
	sp := domain.Sprint{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.SprintPlanning,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 14),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&sp)
	}
	return sp
}

func NewTestMilestone(title string, due time.Time) domain.Milestone {
	now := time.Now().UTC()
	return domain.Milestone{
		ID:        uuid.New().String(),
		Title:     title,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestNotification builds a start-confirmation notification for ring-buffer
// and listing tests.
func NewTestNotification(projectID string, seq int) domain.TaskNotification {
	now := time.Now().UTC()
	return domain.TaskNotification{
		ID:                   uuid.New().String(),
		ProjectID:            projectID,
		ProjectName:          "Test Project",
		TaskID:               uuid.New().String(),
		TaskName:             fmt.Sprintf("Task %d", seq),
		Type:                 domain.NotificationStartConfirmation,
		Message:              fmt.Sprintf("Task 'Task %d' was marked as in progress. Confirm the kickoff?", seq),
		TriggeredAt:          now,
		RequiresConfirmation: true,
		AllowStartDateEdit:   true,
		SuggestedStartDate:   now,
	}
}
