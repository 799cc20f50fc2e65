package app

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	runDryRun bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the monitor loop",
		Long: `Run the infinite monitor loop: every check interval, query the source
subvolume's generation counter, and when it moved since the last check,
take a snapshot into the right bucket and trim that bucket to the cap.

The loop exits cleanly on SIGINT/SIGTERM after finishing the cycle in
flight. A failing cycle is logged and retried on the next tick.`,
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "log decisions without creating or deleting snapshots")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	m, err := buildMonitor(cfg, log, runDryRun)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return m.Run(ctx)
}
