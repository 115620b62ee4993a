package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/bigroot/observe"
)

// Config is the bigroot configuration file.
type Config struct {
	Observe  observe.Config `yaml:"observe"`
	Log      LogConfig      `yaml:"log"`
	Cache    CacheConfig    `yaml:"cache"`
	Fixtures FixtureConfig  `yaml:"fixtures"`
}

// LogConfig selects the log destination. An empty File logs to stderr.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// CacheConfig configures the shared power cache and its memory guard.
type CacheConfig struct {
	CounterLimit      int64   `yaml:"counter_limit"`
	MaxAllocMB        uint64  `yaml:"max_alloc_mb"` // 0: memory obtained from the OS
	CriticalThreshold float64 `yaml:"critical_threshold"`
}

// FixtureConfig holds defaults for the fixtures and bench commands.
type FixtureConfig struct {
	Dir         string `yaml:"dir"`
	Parallelism int    `yaml:"parallelism"` // 0: GOMAXPROCS
}

var (
	errInvalidLogRotation = errors.New("config: log rotation values must not be negative")
	errInvalidThreshold   = errors.New("config: cache critical_threshold must be within [0, 1)")
	errInvalidParallelism = errors.New("config: fixtures parallelism must not be negative")
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Observe: observe.Config{
			ServiceName: "bigroot",
			Version:     version,
			Tracing:     observe.TracingConfig{Enabled: false, Exporter: "none", SamplePct: 1},
			Metrics:     observe.MetricsConfig{Enabled: false, Exporter: "none"},
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxAgeDays: 7,
			MaxBackups: 3,
			Compress:   true,
		},
		Cache: CacheConfig{
			CriticalThreshold: 0.95,
		},
		Fixtures: FixtureConfig{
			Dir: "testdata/speed",
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Observe.Validate(); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxAgeDays < 0 || c.Log.MaxBackups < 0 {
		return errInvalidLogRotation
	}
	if c.Cache.CriticalThreshold < 0 || c.Cache.CriticalThreshold >= 1 {
		return fmt.Errorf("%w, got: %v", errInvalidThreshold, c.Cache.CriticalThreshold)
	}
	if c.Fixtures.Parallelism < 0 {
		return errInvalidParallelism
	}
	return nil
}
