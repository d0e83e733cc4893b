package service

import (
	"context"
	"time"

	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/kmadrilejo/atelier/internal/template"
)

type templateService struct {
	library  *template.Library
	observer UseCaseObserver
}

// NewTemplateService wraps a template library with use-case telemetry.
func NewTemplateService(library *template.Library, observers ...UseCaseObserver) TemplateService {
	return &templateService{
		library:  library,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Register(ctx context.Context, id string, tpl *template.ProjectTemplate, overwrite bool) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "register-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"template": id, "overwrite": overwrite},
		})
	}()
	return s.library.Register(id, tpl, overwrite)
}

func (s *templateService) RegisterFile(ctx context.Context, path string, overwrite bool) (string, error) {
	file, err := template.LoadFile(path)
	if err != nil {
		return "", err
	}
	if err := s.Register(ctx, file.ID, &file.Template, overwrite); err != nil {
		return "", err
	}
	return file.ID, nil
}

func (s *templateService) Unregister(ctx context.Context, id string) error {
	s.library.Unregister(id)
	return nil
}

func (s *templateService) Get(ctx context.Context, id string) (*template.ProjectTemplate, error) {
	return s.library.Resolve(id)
}

func (s *templateService) List(ctx context.Context) []string {
	return s.library.IDs()
}

func (s *templateService) BuildPlan(ctx context.Context, id string, startDate time.Time) ([]domain.Task, []domain.Milestone, error) {
	return s.library.BuildPlan(id, startDate)
}
