package cmd

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/render"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Prints the global Invited Expert figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return withSnapshot(cmd, func(snap *snapshot.Snapshot) error {
				if format == formatJSON {
					return printJSON(cmd.OutOrStdout(), snap.Summary())
				}
				return render.Summary(cmd.OutOrStdout(), snap.Summary())
			})
		},
	}

	addFormatFlag(cmd)
	return cmd
}
