package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// PlanBuilder expands a template into dated tasks and milestones. Satisfied by
// *template.Library.
type PlanBuilder interface {
	BuildPlan(templateID string, startDate time.Time) ([]domain.Task, []domain.Milestone, error)
}

// ResolvedSetup is one batch entry after scheduling: the start it actually got
// and the plan built from it. Completion is the latest due date in the plan,
// or ActualStart when the plan is empty.
type ResolvedSetup struct {
	Setup       contract.ProjectSetup
	ActualStart time.Time
	Completion  time.Time
	Tasks       []domain.Task
	Milestones  []domain.Milestone
}

// BatchPolicy rewrites a setup batch before resolution. Policies must not
// remove or rename setups, only adjust their wiring.
type BatchPolicy func(setups []contract.ProjectSetup) []contract.ProjectSetup

// BrandingFirstPolicy wires any website project without an explicit dependency
// to start after the batch's branding project. Agency policy: a site launch
// waits for the brand identity it is built on.
func BrandingFirstPolicy(setups []contract.ProjectSetup) []contract.ProjectSetup {
	branding := ""
	for _, s := range setups {
		if s.TemplateID == "branding" {
			branding = s.Name
			break
		}
	}
	if branding == "" {
		return setups
	}

	out := make([]contract.ProjectSetup, len(setups))
	copy(out, setups)
	for i := range out {
		if out[i].TemplateID == "website" && out[i].StartAfterName == "" {
			out[i].StartAfterName = branding
		}
	}
	return out
}

// ResolveBatch schedules a batch of project setups whose start-after
// references point at each other by name. It validates every reference up
// front, then iterates to a fixed point: a setup resolves once it has no
// dependency or its dependency's completion is known, starting at
// max(requested start, dependency completion). A full pass with no progress
// fails with domain.ErrScheduling naming the unresolved setups.
func ResolveBatch(setups []contract.ProjectSetup, builder PlanBuilder, policy BatchPolicy) ([]ResolvedSetup, error) {
	if policy != nil {
		setups = policy(setups)
	}

	known := make(map[string]bool, len(setups))
	for _, s := range setups {
		known[s.Name] = true
	}
	for _, s := range setups {
		if s.StartAfterName != "" && !known[s.StartAfterName] {
			return nil, fmt.Errorf("project %q depends on unknown project %q: %w",
				s.Name, s.StartAfterName, domain.ErrValidation)
		}
	}

	pending := make([]contract.ProjectSetup, len(setups))
	copy(pending, setups)
	completion := make(map[string]time.Time, len(setups))
	var resolved []ResolvedSetup

	for len(pending) > 0 {
		progress := false
		remaining := pending[:0]

		for _, setup := range pending {
			actualStart := setup.StartDate
			if setup.StartAfterName != "" {
				depDone, ok := completion[setup.StartAfterName]
				if !ok {
					remaining = append(remaining, setup)
					continue
				}
				actualStart = domain.MaxTime(actualStart, depDone)
			}

			tasks, milestones, err := builder.BuildPlan(setup.TemplateID, actualStart)
			if err != nil {
				return nil, err
			}

			end := ProjectEnd(tasks, milestones)
			projectDone := actualStart
			if end != nil {
				projectDone = *end
			}

			resolved = append(resolved, ResolvedSetup{
				Setup:       setup,
				ActualStart: actualStart,
				Completion:  projectDone,
				Tasks:       tasks,
				Milestones:  milestones,
			})
			completion[setup.Name] = projectDone
			progress = true
		}

		pending = remaining
		if !progress && len(pending) > 0 {
			names := make([]string, len(pending))
			for i, s := range pending {
				names[i] = s.Name
			}
			return nil, fmt.Errorf("unable to resolve project scheduling for: %s: %w",
				strings.Join(names, ", "), domain.ErrScheduling)
		}
	}

	return resolved, nil
}
