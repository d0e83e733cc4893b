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

type onboardingService struct {
	library  *template.Library
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	policy   scheduler.BatchPolicy
	observer UseCaseObserver
}

// NewOnboardingService creates the multi-project onboarding resolver. The
// batch policy defaults to BrandingFirstPolicy when nil.
func NewOnboardingService(
	library *template.Library,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	policy scheduler.BatchPolicy,
	observers ...UseCaseObserver,
) OnboardingService {
	if policy == nil {
		policy = scheduler.BrandingFirstPolicy
	}
	return &onboardingService{
		library:  library,
		projects: projects,
		uow:      uow,
		policy:   policy,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *onboardingService) Onboard(ctx context.Context, req contract.OnboardRequest) (result *contract.OnboardResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"client": req.ClientID, "setups": len(req.Setups)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "onboard-client",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	resolved, err := scheduler.ResolveBatch(req.Setups, s.library, s.policy)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	year := now.Year()

	// Sequence numbers continue from what the store already holds, counting
	// batch-local projects that share a template.
	seqBase := make(map[string]int)
	projects := make([]*domain.Project, 0, len(resolved))
	for _, r := range resolved {
		templateID := r.Setup.TemplateID
		if _, ok := seqBase[templateID]; !ok {
			count, err := s.projects.CountByTemplate(ctx, templateID)
			if err != nil {
				return nil, err
			}
			seqBase[templateID] = count
		}
		seqBase[templateID]++

		prefix, err := s.library.CodePrefix(templateID)
		if err != nil {
			return nil, err
		}

		currency := r.Setup.Currency
		if currency == "" {
			currency = "USD"
		}

		projects = append(projects, &domain.Project{
			ID:         uuid.New().String(),
			Name:       r.Setup.Name,
			Code:       domain.ProjectCode(prefix, year, seqBase[templateID]),
			ClientID:   req.ClientID,
			TemplateID: templateID,
			Status:     domain.ProjectPlanning,
			StartDate:  r.ActualStart,
			EndDate:    scheduler.ProjectEnd(r.Tasks, r.Milestones),
			ManagerID:  r.Setup.ManagerID,
			Budget:     r.Setup.Budget,
			Currency:   currency,
			Tasks:      r.Tasks,
			Milestones: r.Milestones,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	// All-or-nothing: every project lands in one transaction.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		for _, p := range projects {
			if err := txProjects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["projects"] = len(projects)
	return &contract.OnboardResult{Projects: projects}, nil
}
