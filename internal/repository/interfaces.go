package repository

import (
	"context"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// ProjectRepo stores project aggregates. Save replaces the whole aggregate
// (tasks, milestones, sprints included) so a caller never leaves a project
// with stale children.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Save(ctx context.Context, p *domain.Project) error
	CountByTemplate(ctx context.Context, templateID string) (int, error)
}

// NotificationRepo is the bounded task-notification log. Append evicts the
// oldest entries beyond domain.NotificationCap in the same operation.
type NotificationRepo interface {
	Append(ctx context.Context, n *domain.TaskNotification) error
	ListByProject(ctx context.Context, projectID string) ([]domain.TaskNotification, error)
	Count(ctx context.Context) (int, error)
}
