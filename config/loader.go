package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DBCONSOLE_PLUGINS_DIR.
const EnvPrefix = "DBCONSOLE"

var configExtensions = []string{"yml", "yaml", "json", "toml"}

// LoaderConfig holds loader dependencies and optional file overrides.
type LoaderConfig struct {
	Fs         afero.Fs
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFs sets the filesystem config and .env files are read from.
func WithFs(fs afero.Fs) LoaderOption {
	return func(lc *LoaderConfig) { lc.Fs = fs }
}

// WithConfigFile sets an explicit config file path. It must exist.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path. It must exist.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load resolves, reads, defaults and validates the configuration. Precedence
// from lowest to highest: built-in defaults, config file, .env file,
// process environment.
func Load(opts ...LoaderOption) (*Config, error) {
	lc := LoaderConfig{}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.Fs == nil {
		lc.Fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(lc.Fs)
	setDefaults(v)

	configFile, err := resolve(lc.Fs, lc.ConfigFile, searchConfigFiles())
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	envFile, err := resolve(lc.Fs, lc.EnvFile, []string{".env"})
	if err != nil {
		return nil, err
	}
	if envFile != "" {
		if err := loadEnvFile(lc.Fs, envFile); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Every key that may be overridden from the environment needs a default,
// otherwise viper does not know to look it up.
func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "dbconsole")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.no_color", false)
	v.SetDefault("logging.timestamp", true)
	v.SetDefault("plugins.dir", "")
	v.SetDefault("plugins.extension", ".so")
	v.SetDefault("plugins.builtins", true)
	v.SetDefault("shell.history_size", 500)
	v.SetDefault("shell.prompt", "dbconsole> ")
}

func searchConfigFiles() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "dbconsole"))
	}

	var paths []string
	for _, dir := range dirs {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(dir, "dbconsole."+ext))
		}
	}
	return paths
}

// resolve returns explicit if set (failing when it does not exist), otherwise
// the first candidate that exists, otherwise "".
func resolve(fs afero.Fs, explicit string, candidates []string) (string, error) {
	if explicit != "" {
		ok, err := afero.Exists(fs, explicit)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("file not found: %s", explicit)
		}
		return explicit, nil
	}
	for _, path := range candidates {
		if ok, _ := afero.Exists(fs, path); ok {
			return path, nil
		}
	}
	return "", nil
}

// loadEnvFile exports the variables in path that are not already set.
func loadEnvFile(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open env file %s: %w", path, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	for k, val := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}
