// Package config loads ritual's settings file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvDB          = "RITUAL_DB"
	EnvLogLevel    = "RITUAL_LOG_LEVEL"
	EnvTimezone    = "RITUAL_TIMEZONE"
	EnvMetricsAddr = "RITUAL_METRICS_ADDR"
)

// WatchConfig controls the watch loop.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// MetricsConfig controls the Prometheus endpoint served by watch.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// Config is the resolved configuration.
type Config struct {
	DBPath   string        `yaml:"db_path"`
	Timezone string        `yaml:"timezone"` // IANA name, empty means local
	LogLevel string        `yaml:"log_level"`
	Watch    WatchConfig   `yaml:"watch"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// Dir is ~/.ritual, or .ritual when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ritual"
	}
	return filepath.Join(home, ".ritual")
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DBPath:   filepath.Join(Dir(), "ritual.db"),
		LogLevel: "warn",
		Watch:    WatchConfig{Interval: 30 * time.Second},
	}
}

// Load reads path over DefaultConfig and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		cfg.Metrics.Addr = v
	}
}

// Validate checks values that would otherwise fail later.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("config: db_path is empty")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("config: watch.interval must be positive, got %s", c.Watch.Interval)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
