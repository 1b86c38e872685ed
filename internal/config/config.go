// Package config loads kernelsim settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fentz26/kernelsim/internal/scheduler"
	"gopkg.in/yaml.v3"
)

// Config holds kernelsim configuration.
type Config struct {
	Backend   BackendConfig    `yaml:"backend"`
	Storage   StorageConfig    `yaml:"storage"`
	UI        UIConfig         `yaml:"ui"`
	Log       LogConfig        `yaml:"log"`
	Scheduler scheduler.Config `yaml:"scheduler"`
}

// BackendConfig locates the simulation backend.
type BackendConfig struct {
	// URL is the base address of the backend (POST <url>/simulate).
	URL string `yaml:"url"`
	// Timeout bounds a single simulation request.
	Timeout time.Duration `yaml:"timeout"`
	// Listen is the address used by `kernelsim backend`.
	Listen string `yaml:"listen"`
}

// StorageConfig locates the durable key/value database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// UIConfig tunes the terminal front end.
type UIConfig struct {
	// MinLogHeight is the smallest log pane height in rows.
	MinLogHeight int `yaml:"min_log_height"`
	// LogHeight is the initial log pane height in rows.
	LogHeight int `yaml:"log_height"`
	// VisualizationLinger keeps the run indicator lit after completion.
	VisualizationLinger time.Duration `yaml:"visualization_linger"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Dir returns ~/.kernelsim, or .kernelsim when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kernelsim"
	}
	return filepath.Join(home, ".kernelsim")
}

// DefaultPath is the config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Backend: BackendConfig{
			URL:     "http://127.0.0.1:7477",
			Timeout: 60 * time.Second,
			Listen:  "127.0.0.1:7477",
		},
		Storage: StorageConfig{
			Path: filepath.Join(dir, "kernelsim.db"),
		},
		UI: UIConfig{
			MinLogHeight:        4,
			LogHeight:           8,
			VisualizationLinger: 1500 * time.Millisecond,
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "kernelsim.log"),
			Level: "info",
		},
		Scheduler: scheduler.DefaultConfig(),
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		return fmt.Errorf("backend.url must be an http(s) URL, got %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	if c.UI.MinLogHeight < 1 {
		return fmt.Errorf("ui.min_log_height must be at least 1")
	}
	if c.UI.LogHeight < c.UI.MinLogHeight {
		return fmt.Errorf("ui.log_height (%d) must not be below ui.min_log_height (%d)", c.UI.LogHeight, c.UI.MinLogHeight)
	}
	if c.UI.VisualizationLinger < 0 {
		return fmt.Errorf("ui.visualization_linger must not be negative")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q, must be: debug, info, warn, or error", c.Log.Level)
	}
	if c.Scheduler.GlobalMax < 1 {
		return fmt.Errorf("scheduler.global_max must be at least 1")
	}
	return nil
}
