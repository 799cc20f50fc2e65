// Package app wires the btrsnapd commands.
package app

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/subvol-tools/btrsnapd/internal/config"
	"github.com/subvol-tools/btrsnapd/internal/logging"
	"github.com/subvol-tools/btrsnapd/internal/monitor"
	"github.com/subvol-tools/btrsnapd/internal/retention"
	"github.com/subvol-tools/btrsnapd/internal/store"
)

var (
	cfgPath string

	// RootCmd is the root command for btrsnapd.
	RootCmd = &cobra.Command{
		Use:   "btrsnapd",
		Short: "Monitor a btrfs subvolume and rotate read-only snapshots",
		Long: `btrsnapd watches a btrfs subvolume for changes and materializes
point-in-time read-only snapshots, rotating them grandfather-father-son
style: each snapshot is filed into a MINUTE, HOUR, DAY, MONTH or YEAR
bucket and every bucket is capped, oldest evicted first.

Snapshots are named YYYYMMDD_HHMMSS_TYPE inside the snapshot directory
and any foreign entries there are left alone.

Examples:
  # Run the monitor loop
  btrsnapd run --config /etc/btrsnapd.yaml

  # See what would happen without touching the store
  btrsnapd run --dry-run

  # Take exactly one snapshot and trim its bucket
  btrsnapd once

  # Show the current snapshot inventory
  btrsnapd list

  # Replay three simulated days against an in-memory store
  btrsnapd selftest --days 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML)")

	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(onceCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(pruneCmd)
	RootCmd.AddCommand(selftestCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig returns the file config when --config was given, the defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

// setup loads and validates config and builds the logger. Shared by every
// command that touches the store.
func setup() (*config.Config, logging.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// buildStore prepares the snapshot directory and returns the store to work
// against. Failing to prepare the directory is fatal before the loop starts.
func buildStore(cfg *config.Config, log logging.Logger, dryRun bool) (store.Store, error) {
	if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("preparing snapshot dir %s: %w", cfg.SnapshotDir, err)
	}
	var st store.Store = store.NewBtrfsStore(cfg.Source, cfg.SnapshotDir)
	if dryRun {
		log.Info("dry-run mode, create/delete suppressed")
		st = &store.DryRun{Wrapped: st, Log: log}
	}
	return st, nil
}

// buildMonitor assembles the full monitor from config.
func buildMonitor(cfg *config.Config, log logging.Logger, dryRun bool) (*monitor.Monitor, error) {
	st, err := buildStore(cfg, log, dryRun)
	if err != nil {
		return nil, err
	}

	var sched cron.Schedule
	if cfg.Schedule != "" {
		sched, err = cron.ParseStandard(cfg.Schedule)
		if err != nil {
			return nil, fmt.Errorf("parsing schedule %q: %w", cfg.Schedule, err)
		}
	}

	return monitor.New(monitor.Config{
		Source:    cfg.Source,
		Interval:  cfg.Interval(),
		Schedule:  sched,
		Store:     st,
		Tokens:    store.NewGenerationSource(),
		Retention: retention.New(st, cfg.MaxPerBucket, log),
		Log:       log,
	}), nil
}
