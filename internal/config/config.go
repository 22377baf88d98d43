// Package config provides configuration management for the gasnet server.
//
// Config file locations (priority order):
//  1. $GASNET_CONFIG
//  2. ./gasnet.yaml
//  3. $XDG_CONFIG_HOME/gasnet/config.yaml
//  4. ~/.config/gasnet/config.yaml
//  5. /etc/gasnet/config.yaml
//
// Missing fields take their defaults; a missing file yields DefaultConfig.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultAddr          = ":8000"
	DefaultCORSOrigin    = "*"
	DefaultDatabasePath  = "./gasnet.db"
	DefaultSolverURL     = "http://localhost:8001"
	DefaultSolverTimeout = 30 * time.Second
	DefaultRatePerSecond = 2
	DefaultBurst         = 4
	DefaultFailThreshold = 5
	DefaultOpenTimeout   = 30 * time.Second
	DefaultFluid         = "lgas"
	DefaultSubjectPrefix = "gasnet.events"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = DefaultCORSOrigin
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Solver.URL == "" {
		c.Solver.URL = DefaultSolverURL
	}
	if c.Solver.Timeout == 0 {
		c.Solver.Timeout = Duration(DefaultSolverTimeout)
	}
	if c.Solver.RatePerSecond == 0 {
		c.Solver.RatePerSecond = DefaultRatePerSecond
	}
	if c.Solver.Burst == 0 {
		c.Solver.Burst = DefaultBurst
	}
	if c.Solver.FailThreshold == 0 {
		c.Solver.FailThreshold = DefaultFailThreshold
	}
	if c.Solver.OpenTimeout == 0 {
		c.Solver.OpenTimeout = Duration(DefaultOpenTimeout)
	}
	if c.Solver.DefaultFluid == "" {
		c.Solver.DefaultFluid = DefaultFluid
	}
	if c.Events.SubjectPrefix == "" {
		c.Events.SubjectPrefix = DefaultSubjectPrefix
	}
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	u, err := url.Parse(c.Solver.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid solver.url %q", c.Solver.URL)
	}
	if c.Solver.RatePerSecond < 0 {
		return fmt.Errorf("solver.rate_per_second must not be negative")
	}
	if c.Solver.Burst < 0 {
		return fmt.Errorf("solver.burst must not be negative")
	}
	if c.Solver.FailThreshold < 0 {
		return fmt.Errorf("solver.fail_threshold must not be negative")
	}
	return nil
}

// NATSEnabled reports whether events are published to NATS
func (c *Config) NATSEnabled() bool {
	return c.Events.NATSURL != ""
}

// SeedEnabled reports whether a seed directory is configured
func (c *Config) SeedEnabled() bool {
	return c.Seed.Dir != ""
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Listen: %s, Database: %s\n", c.Server.Addr, c.Database.Path)
	summary += fmt.Sprintf("Solver: %s (timeout %s, %.1f req/s burst %d, breaker after %d failures for %s), fluid %s\n",
		c.Solver.URL, c.Solver.Timeout.Duration(), c.Solver.RatePerSecond, c.Solver.Burst,
		c.Solver.FailThreshold, c.Solver.OpenTimeout.Duration(), c.Solver.DefaultFluid)
	if c.NATSEnabled() {
		summary += fmt.Sprintf("Events: NATS %s subject %s.*", c.Events.NATSURL, c.Events.SubjectPrefix)
	} else {
		summary += "Events: SSE only"
	}
	if c.SeedEnabled() {
		summary += fmt.Sprintf("\nSeed: %s (watch %t)", c.Seed.Dir, c.Seed.Watch)
	}
	return summary
}
