package render

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs an engine on first use.
type Factory func() (Engine, error)

// Registry maps backend names to engine factories. It replaces any global
// engine lookup: callers construct one, register the backends they link in,
// and pass it by reference to whatever builds sensors. Shutdown tears down
// every engine the registry instantiated.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	engines   map[string]Engine
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		engines:   make(map[string]Engine),
	}
}

// Register adds a named backend factory. Registering a duplicate name is an
// error.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("render engine %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Engine returns the named engine, constructing it on first use.
func (r *Registry) Engine(name string) (Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[name]; ok {
		return e, nil
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("render engine %q not registered (have %v)", name, r.names())
	}
	e, err := f()
	if err != nil {
		return nil, fmt.Errorf("constructing render engine %q: %w", name, err)
	}
	r.engines[name] = e
	return e, nil
}

// Shutdown destroys every instantiated engine and clears the registry.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.engines {
		e.Destroy()
	}
	r.engines = make(map[string]Engine)
	r.factories = make(map[string]Factory)
}

// names must be called with r.mu held.
func (r *Registry) names() []string {
	out := make([]string, 0, len(r.factories))
	for n := range r.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
