package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	// Source is the subvolume being monitored.
	Source string `yaml:"source"`
	// SnapshotDir is where read-only snapshots are materialized.
	SnapshotDir string `yaml:"snapshotDir"`
	// CheckInterval is the poll interval in seconds.
	CheckInterval int `yaml:"checkInterval"`
	// Schedule is an optional cron expression. When set it replaces the
	// fixed CheckInterval for deciding when the next check runs.
	Schedule     string        `yaml:"schedule"`
	MaxPerBucket int           `yaml:"maxPerBucket"`
	Logging      LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
	File  string `yaml:"file"`  // empty = stderr only
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Source:        "/btrfs/home",
		SnapshotDir:   "/btrfs/snapshot",
		CheckInterval: 300,
		MaxPerBucket:  30,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval) * time.Second
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source must be set")
	}
	if c.SnapshotDir == "" {
		return fmt.Errorf("snapshotDir must be set")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("checkInterval must be positive, got %d", c.CheckInterval)
	}
	if c.MaxPerBucket <= 0 {
		return fmt.Errorf("maxPerBucket must be positive, got %d", c.MaxPerBucket)
	}
	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return fmt.Errorf("parsing schedule %q: %w", c.Schedule, err)
		}
	}
	return nil
}
