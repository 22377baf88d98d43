package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Solver   SolverConfig   `yaml:"solver"`
	Events   EventsConfig   `yaml:"events"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SeedConfig names a directory of network files imported at startup.
// With Watch set, changed files are imported again while the server runs.
type SeedConfig struct {
	Dir   string `yaml:"dir,omitempty"`
	Watch bool   `yaml:"watch,omitempty"`
}

// SolverConfig describes the remote solver and how hard we may push it
type SolverConfig struct {
	URL           string   `yaml:"url"`
	Timeout       Duration `yaml:"timeout"`
	RatePerSecond float64  `yaml:"rate_per_second"`
	Burst         int      `yaml:"burst"`
	FailThreshold int      `yaml:"fail_threshold"`
	OpenTimeout   Duration `yaml:"open_timeout"`
	DefaultFluid  string   `yaml:"default_fluid"`
}

// EventsConfig holds optional NATS publication settings.
// An empty NATSURL disables publication.
type EventsConfig struct {
	NATSURL       string `yaml:"nats_url,omitempty"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
