package cmd

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/render"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/naka-gawa/w3c-ie-stats/internal/usecase"
	"github.com/spf13/cobra"
)

func newAffiliationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "affiliations",
		Short: "Lists the organizations Invited Experts are affiliated with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			search, _ := cmd.Flags().GetString("search")
			token, _ := cmd.Flags().GetString("id")

			return withSnapshot(cmd, func(snap *snapshot.Snapshot) error {
				res := usecase.QueryAffiliations(snap, search, token)
				if format == formatJSON {
					return printJSON(cmd.OutOrStdout(), res)
				}
				if err := render.Notice(cmd.OutOrStdout(), res.Notice); err != nil {
					return err
				}
				return render.Affiliations(cmd.OutOrStdout(), res.Affiliations)
			})
		},
	}

	cmd.Flags().StringP("search", "s", "", "Case-insensitive affiliation name substring")
	cmd.Flags().String("id", "", "Single affiliation by URI token")
	addFormatFlag(cmd)
	return cmd
}
