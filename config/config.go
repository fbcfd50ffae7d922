// Package config loads dbconsole settings from a config file, an optional
// .env file and DBCONSOLE_* environment variables.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/logger"
)

// Config is the application configuration.
type Config struct {
	Name     string                      `yaml:"name" mapstructure:"name"`
	Logging  logger.Config               `yaml:"logging" mapstructure:"logging"`
	Plugins  PluginsConfig               `yaml:"plugins" mapstructure:"plugins"`
	Shell    ShellConfig                 `yaml:"shell" mapstructure:"shell"`
	Profiles map[string]connector.Config `yaml:"profiles" mapstructure:"profiles"`
}

// PluginsConfig controls provider discovery.
type PluginsConfig struct {
	// Dir is scanned for provider modules. Empty means the executable's directory.
	Dir       string `yaml:"dir" mapstructure:"dir"`
	Extension string `yaml:"extension" mapstructure:"extension"`
	// Builtins registers the providers compiled into the binary.
	Builtins bool `yaml:"builtins" mapstructure:"builtins"`
}

// ShellConfig controls the interactive shell.
type ShellConfig struct {
	HistorySize int    `yaml:"history_size" mapstructure:"history_size"`
	Prompt      string `yaml:"prompt" mapstructure:"prompt"`
}

// ApplyDefaults applies default values to the whole tree.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "dbconsole"
	}
	c.Logging.ApplyDefaults()
	c.Plugins.ApplyDefaults()
	c.Shell.ApplyDefaults()
	for name, p := range c.Profiles {
		if p.Retry != nil {
			p.Retry.ApplyDefaults()
		}
		c.Profiles[name] = p
	}
}

// Validate validates the whole tree.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Plugins.Validate(); err != nil {
		return err
	}
	if err := c.Shell.Validate(); err != nil {
		return err
	}
	for _, name := range c.ProfileNames() {
		p := c.Profiles[name]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profiles.%s: %w", name, err)
		}
	}
	return nil
}

// Profile returns the named connection profile. Names are case-insensitive.
func (c *Config) Profile(name string) (connector.Config, error) {
	p, ok := c.Profiles[strings.ToLower(name)]
	if !ok {
		return connector.Config{}, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// ProfileNames returns the sorted profile names.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *PluginsConfig) ApplyDefaults() {
	if c.Extension == "" {
		c.Extension = ".so"
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
}

func (c *PluginsConfig) Validate() error {
	if len(c.Extension) < 2 {
		return fmt.Errorf("plugins.extension is invalid (got: %q)", c.Extension)
	}
	return nil
}

func (c *ShellConfig) ApplyDefaults() {
	if c.HistorySize == 0 {
		c.HistorySize = 500
	}
	if c.Prompt == "" {
		c.Prompt = "dbconsole> "
	}
}

func (c *ShellConfig) Validate() error {
	if c.HistorySize < 0 {
		return fmt.Errorf("shell.history_size must not be negative (got: %d)", c.HistorySize)
	}
	return nil
}
