package discovery

import (
	"strings"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/logger"
	"github.com/spf13/afero"
)

// DefaultExtension is the file extension of provider modules.
const DefaultExtension = ".so"

// Option configures a Registry.
type Option func(*Registry)

// WithFs sets the filesystem used to enumerate module files.
func WithFs(fs afero.Fs) Option {
	return func(r *Registry) { r.fs = fs }
}

// WithLoader replaces the plugin loader.
func WithLoader(l Loader) Option {
	return func(r *Registry) { r.loader = l }
}

// WithExtension sets the module file extension. The leading dot is optional.
func WithExtension(ext string) Option {
	return func(r *Registry) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.extension = ext
	}
}

// WithBuiltins adds compiled-in provider factories that are instantiated at
// the start of every scan.
func WithBuiltins(factories ...connector.Factory) Option {
	return func(r *Registry) { r.builtins = append(r.builtins, factories...) }
}

// WithLogger sets the registry logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}
