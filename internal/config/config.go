// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - Validate reports problems wrapped in ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Catalog backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CatalogBackend picks the hackathon store: memory or sqlite.
	CatalogBackend string `koanf:"catalog_backend"`

	// SQLitePath is the database file for the sqlite backend. ":memory:" is allowed.
	SQLitePath string `koanf:"sqlite_path"`

	// SeedFile loads hackathons from a yaml, json or toml file at startup.
	SeedFile string `koanf:"seed_file"`

	// SeedDemo loads the built-in demo catalog when the store is empty.
	SeedDemo bool `koanf:"seed_demo"`

	// IdempotencySize bounds how many Idempotency-Key values are remembered.
	IdempotencySize int `koanf:"idempotency_size"`

	// MCPEnabled mounts the MCP tool server on /mcp.
	MCPEnabled bool `koanf:"mcp_enabled"`

	// MetricsIntervalMS is how often catalog and system gauges are refreshed.
	MetricsIntervalMS int `koanf:"metrics_interval_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		CatalogBackend:    BackendMemory,
		SQLitePath:        "hackstack.db",
		SeedDemo:          true,
		IdempotencySize:   10_000,
		MCPEnabled:        true,
		MetricsIntervalMS: 5_000,
	}
}

// MetricsInterval returns MetricsIntervalMS as a duration.
func (c *Config) MetricsInterval() time.Duration {
	return time.Duration(c.MetricsIntervalMS) * time.Millisecond
}

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.CatalogBackend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown catalog_backend %q", ErrInvalidConfig, c.CatalogBackend)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.IdempotencySize < 0 {
		return fmt.Errorf("%w: idempotency_size cannot be negative", ErrInvalidConfig)
	}
	if c.MetricsIntervalMS <= 0 {
		return fmt.Errorf("%w: metrics_interval_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
