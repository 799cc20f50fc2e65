package app

import (
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/subvol-tools/btrsnapd/internal/snapshot"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current snapshot inventory",
	Long: `List the snapshots in the store grouped by bucket, coarsest first.
Entries whose name does not end in a known bucket suffix are not shown;
they are not managed by btrsnapd.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	st, err := buildStore(cfg, log, false)
	if err != nil {
		return err
	}

	names, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	inv := snapshot.Take(names)

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetBorder(false)
	tbl.SetHeader([]string{"Snapshot", "Bucket", "Taken"})

	for _, b := range snapshot.Buckets {
		for _, id := range inv[b] {
			taken := id.Stamp
			if t, err := time.ParseInLocation(snapshot.StampLayout, id.Stamp, time.Local); err == nil {
				taken = t.Format("2006-01-02 15:04:05")
			}
			tbl.Append([]string{id.Name(), string(b), taken})
		}
	}

	tbl.Render()
	return nil
}
