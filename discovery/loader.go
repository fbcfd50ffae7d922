package discovery

import (
	"fmt"
	"plugin"

	"github.com/Konsultn-Engineering/dbconsole/connector"
)

// EntryPoint is the symbol every provider module must export. Its type must be
// func() []connector.Factory.
const EntryPoint = "Providers"

// Loader turns one module file into the provider factories it exposes.
type Loader interface {
	Load(path string) ([]connector.Factory, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) ([]connector.Factory, error)

func (f LoaderFunc) Load(path string) ([]connector.Factory, error) { return f(path) }

// PluginLoader loads Go plugins built with -buildmode=plugin.
type PluginLoader struct{}

func (PluginLoader) Load(path string) ([]connector.Factory, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup(EntryPoint)
	if err != nil {
		return nil, err
	}
	fn, ok := sym.(func() []connector.Factory)
	if !ok {
		return nil, fmt.Errorf("symbol %s has type %T, want func() []connector.Factory", EntryPoint, sym)
	}
	return fn(), nil
}
