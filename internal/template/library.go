package template

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kmadrilejo/atelier/internal/domain"
)

// Library holds registered project templates keyed by id. Registration is the
// only mutation path and is serialized behind a write lock so plan builds see
// a consistent template. Construct one and inject it; there is no package
// singleton.
type Library struct {
	mu        sync.RWMutex
	templates map[string]*ProjectTemplate
}

// NewLibrary creates a library seeded with the given templates. Seeds are
// validated; an invalid seed is a programming error and panics.
func NewLibrary(seed map[string]*ProjectTemplate) *Library {
	lib := &Library{templates: make(map[string]*ProjectTemplate, len(seed))}
	for id, tpl := range seed {
		if err := lib.Register(id, tpl, true); err != nil {
			panic(fmt.Sprintf("invalid seed template %q: %v", id, err))
		}
	}
	return lib
}

// Register validates and stores a template. It fails with domain.ErrConflict
// when the id exists and overwrite is false, and with domain.ErrValidation
// when the template is structurally invalid. Nothing is stored on failure.
func (l *Library) Register(id string, tpl *ProjectTemplate, overwrite bool) error {
	if err := Validate(tpl); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.templates[id]; exists && !overwrite {
		return fmt.Errorf("template %q: %w", id, domain.ErrConflict)
	}
	l.templates[id] = tpl
	return nil
}

// Unregister removes a template; removing an unknown id is a no-op.
func (l *Library) Unregister(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.templates, id)
}

// Resolve returns the template registered under id.
func (l *Library) Resolve(id string) (*ProjectTemplate, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tpl, ok := l.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
	}
	return tpl, nil
}

// Exists reports whether a template id is registered.
func (l *Library) Exists(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.templates[id]
	return ok
}

// CodePrefix returns the code prefix for a template id.
func (l *Library) CodePrefix(id string) (string, error) {
	tpl, err := l.Resolve(id)
	if err != nil {
		return "", err
	}
	return tpl.CodePrefix, nil
}

// IDs returns registered template ids in sorted order.
func (l *Library) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.templates))
	for id := range l.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
