package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPathEnv names the environment variable that points at an
	// optional YAML configuration file.
	DefaultConfigPathEnv = "CERBERUS_CONFIG"

	// BootstrapPlaceholder is the documented placeholder shipped in example
	// configuration. A bootstrap token equal to this value is treated as
	// unconfigured: the bootstrap flow fails closed rather than accepting
	// any caller token.
	BootstrapPlaceholder = "CHANGE_THIS_IN_PRODUCTION_VIA_ENV_VAR"
)

// Config holds all process configuration. It is loaded once at startup and
// injected into the components that need it; nothing in the core reads
// ambient globals after that.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `yaml:"database_url"`

	// BindAddress is the server listen address.
	BindAddress string `yaml:"bind_address"`

	// Port is the server listen port.
	Port string `yaml:"port"`

	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// BootstrapToken is the shared secret gating the one-time bootstrap
	// flow. It never lives in the credential store.
	BootstrapToken string `yaml:"bootstrap_token"`
}

func newDefault() *Config {
	return &Config{
		BindAddress: "0.0.0.0",
		Port:        "8000",
		LogLevel:    "info",
	}
}

// Load builds a Config from an optional YAML file (CERBERUS_CONFIG) overlaid
// with environment variables. Environment variables take precedence.
func Load() (*Config, error) {
	cfg := newDefault()

	if path := os.Getenv(DefaultConfigPathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.DatabaseURL = val
	}
	if val := os.Getenv("BIND_ADDRESS"); val != "" {
		c.BindAddress = val
	}
	if val := os.Getenv("PORT"); val != "" {
		c.Port = val
	}
	if val := os.Getenv("CERBERUS_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("CERBERUS_BOOTSTRAP_TOKEN"); val != "" {
		c.BootstrapToken = val
	}
}

// BootstrapConfigured reports whether the bootstrap token has been set to a
// real value. An unset token or the documented placeholder both count as
// unconfigured.
func (c *Config) BootstrapConfigured() bool {
	return c.BootstrapToken != "" && c.BootstrapToken != BootstrapPlaceholder
}

// Validate checks the configuration for startup-blocking problems.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
