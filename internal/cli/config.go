package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultServerURL is used when neither the config file nor a flag names one
const DefaultServerURL = "http://localhost:8000"

// Config holds gasnetctl settings
type Config struct {
	ServerURL string   `toml:"server_url"`
	Fluid     string   `toml:"fluid"`
	UI        UIConfig `toml:"ui"`
}

// UIConfig controls terminal output
type UIConfig struct {
	Color bool `toml:"color"`
}

// DefaultConfig returns the settings used without a config file
func DefaultConfig() *Config {
	return &Config{
		ServerURL: DefaultServerURL,
		UI:        UIConfig{Color: true},
	}
}

// ConfigDir returns the gasnet config directory
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "gasnet")
}

// ConfigPath returns the gasnetctl config file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "gasnetctl.toml")
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return cfg, nil
}

// SaveConfig writes cfg to path
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
