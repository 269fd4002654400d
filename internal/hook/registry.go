package hook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/calder/hookline/internal/subprocess"
)

// Factory builds a hook unit from its resolved settings.
type Factory func(settings Settings, exec *subprocess.Executor) Unit

// Registry maps hook names to factories. Registration is last-writer-wins:
// a later registration under an existing name replaces the earlier one, so
// repository-local hooks can shadow builtins.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory to a name, replacing any earlier binding.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create instantiates the hook registered under name.
func (r *Registry) Create(name string, settings Settings, exec *subprocess.Executor) (Unit, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("hook %q not registered", name)
	}
	return factory(settings, exec), nil
}

// Known reports whether a hook is registered under name.
func (r *Registry) Known(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}

// Keys returns all registered hook names in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Global registry instance.
var globalRegistry = NewRegistry()

// Register binds a factory in the global registry.
func Register(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// Create instantiates a hook from the global registry.
func Create(name string, settings Settings, exec *subprocess.Executor) (Unit, error) {
	return globalRegistry.Create(name, settings, exec)
}

// Known reports whether the global registry knows the given hook name.
func Known(name string) bool {
	return globalRegistry.Known(name)
}

// Keys returns all hook names known to the global registry.
func Keys() []string {
	return globalRegistry.Keys()
}

func init() {
	globalRegistry.Register("go-vet", NewVetHook)
	globalRegistry.Register("gofmt", NewFmtHook)
	globalRegistry.Register("trailing-whitespace", NewWhitespaceHook)
	globalRegistry.Register("yaml-syntax", NewYAMLSyntaxHook)
}
