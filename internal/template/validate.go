package template

import (
	"fmt"
	"strings"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// Validate checks a template for structural errors: it must contain at least
// one task, durations must be positive, names must be unique, every dependency
// must name a task in the same template, and the dependency graph must be
// acyclic. All failures wrap domain.ErrValidation.
func Validate(tpl *ProjectTemplate) error {
	if tpl == nil || len(tpl.Tasks) == 0 {
		return fmt.Errorf("template must include at least one task: %w", domain.ErrValidation)
	}

	names := make(map[string]bool, len(tpl.Tasks))
	for _, b := range tpl.Tasks {
		if b.Name == "" {
			return fmt.Errorf("task name is required: %w", domain.ErrValidation)
		}
		if names[b.Name] {
			return fmt.Errorf("duplicate task name %q: %w", b.Name, domain.ErrValidation)
		}
		names[b.Name] = true
	}

	for _, b := range tpl.Tasks {
		if b.DurationDays <= 0 {
			return fmt.Errorf("task %q must have a positive duration: %w", b.Name, domain.ErrValidation)
		}
		var missing []string
		for _, dep := range b.DependsOn {
			if !names[dep] {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("task %q references unknown dependencies: %s: %w",
				b.Name, strings.Join(missing, ", "), domain.ErrValidation)
		}
	}

	if _, err := topoOrder(tpl.Tasks); err != nil {
		return err
	}
	return nil
}

// topoOrder returns blueprint indices in a dependency-respecting order,
// breaking ties by declaration order (Kahn's algorithm). Cycles fail fast
// instead of trusting declaration order.
func topoOrder(tasks []TaskBlueprint) ([]int, error) {
	indexOf := make(map[string]int, len(tasks))
	for i, b := range tasks {
		indexOf[b.Name] = i
	}

	indegree := make([]int, len(tasks))
	dependents := make([][]int, len(tasks))
	for i, b := range tasks {
		for _, dep := range b.DependsOn {
			j := indexOf[dep]
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	order := make([]int, 0, len(tasks))
	for {
		next := -1
		for i := range tasks {
			if indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		indegree[next] = -1
		order = append(order, next)
		for _, i := range dependents[next] {
			indegree[i]--
		}
	}

	if len(order) != len(tasks) {
		var cyclic []string
		for i, d := range indegree {
			if d >= 0 {
				cyclic = append(cyclic, tasks[i].Name)
			}
		}
		return nil, fmt.Errorf("dependency cycle involving: %s: %w",
			strings.Join(cyclic, ", "), domain.ErrValidation)
	}
	return order, nil
}
