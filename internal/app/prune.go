package app

import (
	"github.com/spf13/cobra"

	"github.com/subvol-tools/btrsnapd/internal/retention"
)

var (
	pruneDryRun bool

	pruneCmd = &cobra.Command{
		Use:   "prune",
		Short: "Trim every bucket to the retention cap",
		Long: `Apply retention to all five buckets without taking a snapshot.
Handy after lowering maxPerBucket or after importing snapshots from
another host.`,
		RunE: runPrune,
	}
)

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "log decisions without deleting snapshots")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	st, err := buildStore(cfg, log, pruneDryRun)
	if err != nil {
		return err
	}

	return retention.New(st, cfg.MaxPerBucket, log).EnforceAll(cmd.Context())
}
