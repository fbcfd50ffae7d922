package connector

import (
	"fmt"
	"sort"
	"sync"
)

// Compiled-in providers register themselves here from init, the same way
// database/sql drivers do. Providers loaded from plugin modules never go
// through this catalog; see the discovery package.
var globalManager = &Manager{
	factories: make(map[string]Factory),
}

// Manager is a catalog of named provider factories.
type Manager struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// Register makes a compiled-in provider available under name. Registering
// the same name twice replaces the earlier factory.
func Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("connector: Register factory for %q is nil", name))
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.factories[name] = factory
}

// New instantiates the compiled-in provider registered under name.
func New(name string) (Provider, error) {
	globalManager.mu.RLock()
	factory, ok := globalManager.factories[name]
	globalManager.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider %s not registered", name)
	}
	return factory()
}

// Builtins returns the registered factories ordered by name.
func Builtins() []Factory {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	names := make([]string, 0, len(globalManager.factories))
	for name := range globalManager.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	factories := make([]Factory, 0, len(names))
	for _, name := range names {
		factories = append(factories, globalManager.factories[name])
	}
	return factories
}

// Names returns the sorted names of all registered providers.
func Names() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	names := make([]string, 0, len(globalManager.factories))
	for name := range globalManager.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
