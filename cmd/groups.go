package cmd

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/aggregate"
	"github.com/naka-gawa/w3c-ie-stats/internal/render"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/spf13/cobra"
)

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Lists groups with their Invited Expert participation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			sortBy, _ := cmd.Flags().GetString("sort")
			by, err := aggregate.ParseGroupSort(sortBy)
			if err != nil {
				return err
			}

			return withSnapshot(cmd, func(snap *snapshot.Snapshot) error {
				groups := snap.GroupsSortedBy(by)
				if format == formatJSON {
					return printJSON(cmd.OutOrStdout(), groups)
				}
				return render.Groups(cmd.OutOrStdout(), groups)
			})
		},
	}

	cmd.Flags().String("sort", string(aggregate.GroupSortSource), "Order: source, ie-count, ie-percentage, ie-editors, ie-chairs or name")
	addFormatFlag(cmd)
	return cmd
}
