package service

import (
	"context"
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/template"
)

// TemplateService manages the template library and expands templates into
// dated plans.
type TemplateService interface {
	Register(ctx context.Context, id string, tpl *template.ProjectTemplate, overwrite bool) error
	RegisterFile(ctx context.Context, path string, overwrite bool) (string, error)
	Unregister(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*template.ProjectTemplate, error)
	List(ctx context.Context) []string
	BuildPlan(ctx context.Context, id string, startDate time.Time) ([]domain.Task, []domain.Milestone, error)
}

// OnboardingService resolves a multi-project setup batch for one client and
// persists the resulting projects atomically: all succeed or none are stored.
type OnboardingService interface {
	Onboard(ctx context.Context, req contract.OnboardRequest) (*contract.OnboardResult, error)
}

// ProjectService reads projects and applies the single-entry-point update
// state machine (template reapply, start shift, partial edits, auto-cascade,
// notification emission, end-date/status rederivation).
type ProjectService interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, projectID string, update contract.ProjectUpdate) (*domain.Project, error)
}

// InsightService serves the read-only analytics views.
type InsightService interface {
	Tracker(ctx context.Context, projectID string) (*contract.TrackerView, error)
	Portfolio(ctx context.Context) ([]contract.PortfolioEntry, error)
}
