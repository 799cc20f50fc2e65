package app

import (
	"github.com/spf13/cobra"
)

var (
	onceDryRun bool

	onceCmd = &cobra.Command{
		Use:   "once",
		Short: "Take one snapshot and trim its bucket",
		Long: `Run a single classify→create→enforce pass and exit. Change detection
is skipped: a one-shot process can never observe a generation
transition, so once always snapshots. Useful from external schedulers
and for smoke testing a new setup.`,
		RunE: runOnce,
	}
)

func init() {
	onceCmd.Flags().BoolVar(&onceDryRun, "dry-run", false, "log decisions without creating or deleting snapshots")
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	m, err := buildMonitor(cfg, log, onceDryRun)
	if err != nil {
		return err
	}

	return m.Snapshot(cmd.Context())
}
