// Package discovery finds provider modules in a directory and keeps the
// current snapshot of instantiated providers keyed by their type name.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	dberrors "github.com/Konsultn-Engineering/dbconsole/errors"
	"github.com/Konsultn-Engineering/dbconsole/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
)

// SourceBuiltin is the Source of providers compiled into the host.
const SourceBuiltin = "builtin"

// Entry is one registered provider.
type Entry struct {
	ID       string
	Provider connector.Provider
	Source   string
}

// Registry holds the providers found by the most recent Scan. Each Scan
// replaces the whole snapshot.
type Registry struct {
	fs        afero.Fs
	loader    Loader
	extension string
	builtins  []connector.Factory
	log       *logger.Logger

	mu      sync.RWMutex
	entries map[string]Entry
	scanID  ulid.ULID
}

// NewRegistry creates an empty registry reading from the OS filesystem
// through the Go plugin loader.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		fs:        afero.NewOsFs(),
		loader:    PluginLoader{},
		extension: DefaultExtension,
		log:       logger.Nop(),
		entries:   make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("discovery")
	return r
}

// Scan discards the current snapshot and rebuilds it from the builtins and
// every module in dir. Failures do not stop the scan; they are returned
// together as one aggregated error alongside whatever was registered.
func (r *Registry) Scan(dir string) (map[string]connector.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]Entry)
	r.scanID = ulid.Make()
	log := r.log.WithFields(map[string]interface{}{"scan_id": r.scanID.String(), "dir": dir})

	var result *multierror.Error

	for i, factory := range r.builtins {
		p, err := instantiate(factory)
		if err != nil {
			result = multierror.Append(result, dberrors.Discovery(SourceBuiltin, fmt.Errorf("factory %d: %w", i, err)))
			continue
		}
		r.add(log, p, SourceBuiltin)
	}

	files, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		result = multierror.Append(result, dberrors.Discovery(dir, err))
		log.Warn("plugin directory unreadable", map[string]interface{}{"error": err})
		return r.snapshot(), finish(result)
	}

	for _, fi := range files {
		if !fi.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(fi.Name()), r.extension) {
			continue
		}
		path := filepath.Join(dir, fi.Name())

		factories, err := r.load(path)
		if err != nil {
			result = multierror.Append(result, dberrors.Discovery(path, err))
			log.Warn("module skipped", map[string]interface{}{"path": path, "error": err})
			continue
		}

		loaded := 0
		for i, factory := range factories {
			p, err := instantiate(factory)
			if err != nil {
				result = multierror.Append(result, dberrors.Discovery(path, fmt.Errorf("factory %d: %w", i, err)))
				log.Warn("provider skipped", map[string]interface{}{"path": path, "index": i, "error": err})
				continue
			}
			r.add(log, p, path)
			loaded++
		}
		log.Info("module loaded", map[string]interface{}{"path": path, "providers": loaded})
	}

	log.Debug("scan finished", map[string]interface{}{"providers": len(r.entries)})
	return r.snapshot(), finish(result)
}

// Providers returns a copy of the current snapshot.
func (r *Registry) Providers() map[string]connector.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Entries returns the current entries ordered by ID.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Lookup finds a provider by its exact ID or, failing that, by the last
// element of its package path when exactly one entry has it.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.entries[name]; ok {
		return e, true
	}

	var found Entry
	matches := 0
	for id, e := range r.entries {
		if Alias(id) == name {
			found = e
			matches++
		}
	}
	return found, matches == 1
}

// ScanID identifies the most recent scan. It is zero before the first one.
func (r *Registry) ScanID() ulid.ULID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scanID
}

// Alias returns the package name part of a provider ID, e.g. "sqlite" for
// "github.com/Konsultn-Engineering/dbconsole/providers/sqlite.Provider".
func Alias(id string) string {
	dot := strings.LastIndex(id, ".")
	if dot <= 0 {
		return id
	}
	pkg := id[:dot]
	return pkg[strings.LastIndex(pkg, "/")+1:]
}

// ExecutableDir returns the directory holding the running executable, the
// default place to look for modules.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func (r *Registry) add(log *logger.Logger, p connector.Provider, source string) {
	id := connector.ProviderName(p)
	if prev, ok := r.entries[id]; ok {
		log.Warn("provider replaced", map[string]interface{}{"id": id, "previous": prev.Source, "source": source})
	}
	r.entries[id] = Entry{ID: id, Provider: p, Source: source}
}

func (r *Registry) snapshot() map[string]connector.Provider {
	out := make(map[string]connector.Provider, len(r.entries))
	for id, e := range r.entries {
		out[id] = e.Provider
	}
	return out
}

func (r *Registry) load(path string) (factories []connector.Factory, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while loading: %v", rec)
		}
	}()
	return r.loader.Load(path)
}

func instantiate(factory connector.Factory) (p connector.Provider, err error) {
	if factory == nil {
		return nil, fmt.Errorf("nil factory")
	}
	defer func() {
		if rec := recover(); rec != nil {
			p, err = nil, fmt.Errorf("panic: %v", rec)
		}
	}()
	p, err = factory()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("factory returned nil provider")
	}
	return p, nil
}

func finish(result *multierror.Error) error {
	if result == nil {
		return nil
	}
	result.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for i, err := range errs {
			lines[i] = err.Error()
		}
		return strings.Join(lines, "\n")
	}
	return result.ErrorOrNil()
}
