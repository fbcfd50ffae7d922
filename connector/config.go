package connector

import (
	"fmt"
	"time"
)

// Config describes how to reach one database: which provider to use and
// either a raw connection string or the parts to build one from.
type Config struct {
	Provider       string            `json:"provider" yaml:"provider" mapstructure:"provider"`
	DSN            string            `json:"dsn" yaml:"dsn" mapstructure:"dsn"`
	Scheme         string            `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
	Host           string            `json:"host" yaml:"host" mapstructure:"host"`
	Port           int               `json:"port" yaml:"port" mapstructure:"port"`
	Database       string            `json:"database" yaml:"database" mapstructure:"database"`
	Username       string            `json:"username" yaml:"username" mapstructure:"username"`
	Password       string            `json:"password" yaml:"password" mapstructure:"password"`
	Params         map[string]string `json:"params" yaml:"params" mapstructure:"params"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout" mapstructure:"connect_timeout"`
	Retry          *RetryConfig      `json:"retry,omitempty" yaml:"retry,omitempty" mapstructure:"retry"`
}

// RetryConfig defines caller-side open retry behavior.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay" mapstructure:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay" mapstructure:"max_delay"`
	Backoff    float64       `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
}

// ApplyDefaults fills unset retry timings.
func (r *RetryConfig) ApplyDefaults() {
	if r.BaseDelay == 0 {
		r.BaseDelay = 500 * time.Millisecond
	}
	if r.MaxDelay == 0 {
		r.MaxDelay = 10 * time.Second
	}
	if r.Backoff == 0 {
		r.Backoff = 2
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.DSN == "" && c.Host == "" {
		return fmt.Errorf("either dsn or host is required")
	}
	if c.DSN == "" && c.Scheme == "" {
		return fmt.Errorf("scheme is required when dsn is not set")
	}
	if c.Retry != nil && c.Retry.MaxRetries < 0 {
		return fmt.Errorf("invalid retry.max_retries: %d", c.Retry.MaxRetries)
	}
	return nil
}

// ConnectionString returns DSN verbatim when set, otherwise builds one from
// the structured fields.
func (c *Config) ConnectionString() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	b := NewDSNBuilder(c.Scheme).
		Auth(c.Username, c.Password).
		Host(c.Host, c.Port).
		Database(c.Database).
		Params(c.Params)
	if c.ConnectTimeout > 0 {
		b = b.Param("connect_timeout", fmt.Sprintf("%d", int(c.ConnectTimeout.Seconds())))
	}
	if err := b.Validate(); err != nil {
		return "", err
	}
	return b.Build(), nil
}
