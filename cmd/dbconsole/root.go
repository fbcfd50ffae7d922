package main

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/dbconsole/config"
	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/discovery"
	"github.com/Konsultn-Engineering/dbconsole/logger"
	_ "github.com/Konsultn-Engineering/dbconsole/providers"
	"github.com/spf13/cobra"
)

type app struct {
	configFile string
	pluginsDir string
	logLevel   string

	cfg      *config.Config
	log      *logger.Logger
	registry *discovery.Registry
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dbconsole",
		Short:         "Run SQL against any database with a registered provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./dbconsole.yml or ~/.config/dbconsole/dbconsole.yml)")
	root.PersistentFlags().StringVar(&a.pluginsDir, "plugins-dir", "", "directory scanned for provider modules (default: next to the executable)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newProvidersCommand(a),
		newExecCommand(a),
		newShellCommand(a),
	)
	return root
}

func (a *app) init() error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(a.logLevel)
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}
	if a.pluginsDir != "" {
		cfg.Plugins.Dir = a.pluginsDir
	}
	a.cfg = cfg

	logger.Init(cfg.Logging, cfg.Name)
	a.log = logger.Global()

	regOpts := []discovery.Option{
		discovery.WithExtension(cfg.Plugins.Extension),
		discovery.WithLogger(a.log),
	}
	if cfg.Plugins.Builtins {
		regOpts = append(regOpts, discovery.WithBuiltins(connector.Builtins()...))
	}
	a.registry = discovery.NewRegistry(regOpts...)
	return nil
}

// scan rebuilds the provider snapshot. Module failures are only warnings.
func (a *app) scan(cmd *cobra.Command) error {
	dir := a.cfg.Plugins.Dir
	if dir == "" {
		exeDir, err := discovery.ExecutableDir()
		if err != nil {
			return fmt.Errorf("locate plugin directory: %w", err)
		}
		dir = exeDir
	}

	if _, err := a.registry.Scan(dir); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", line)
		}
	}
	return nil
}

type target struct {
	provider   connector.Provider
	connString string
	retry      *connector.RetryConfig
}

// resolveTarget picks the provider and connection string from a profile,
// explicit flags, or both (flags win).
func (a *app) resolveTarget(providerName, profileName, dsn string) (*target, error) {
	var t target
	if profileName != "" {
		profile, err := a.cfg.Profile(profileName)
		if err != nil {
			return nil, err
		}
		if providerName == "" {
			providerName = profile.Provider
		}
		if dsn == "" {
			if dsn, err = profile.ConnectionString(); err != nil {
				return nil, fmt.Errorf("profile %s: %w", profileName, err)
			}
		}
		t.retry = profile.Retry
	}
	if providerName == "" {
		return nil, fmt.Errorf("a provider is required: use --provider or --profile")
	}

	entry, ok := a.registry.Lookup(providerName)
	if !ok {
		return nil, fmt.Errorf("provider %q not found; run 'dbconsole providers' to list them", providerName)
	}
	t.provider = entry.Provider
	t.connString = dsn
	return &t, nil
}

func (a *app) lookup(name string) (connector.Provider, bool) {
	e, ok := a.registry.Lookup(name)
	return e.Provider, ok
}
