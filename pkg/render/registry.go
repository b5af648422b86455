package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores renderers by name so the CLI and HTTP handlers can pick a
// presentation at runtime. The first registered renderer becomes the
// fallback for empty lookups.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates a registry holding the given renderers.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer)}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a renderer under its lower-cased Name(). Duplicate names
// return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// Get retrieves a renderer by name. An empty name returns the fallback.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := normalizeName(name)
	if key == "" {
		key = r.fallback
	}
	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found (have %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return renderer, nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
