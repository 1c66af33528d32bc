package cmd

import (
	"github.com/naka-gawa/w3c-ie-stats/internal/render"
	"github.com/naka-gawa/w3c-ie-stats/internal/snapshot"
	"github.com/naka-gawa/w3c-ie-stats/internal/usecase"
	"github.com/spf13/cobra"
)

func newExpertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experts",
		Short: "Lists Invited Experts, most active first",
		Long: `Lists Invited Experts with their groups, roles, GitHub activity and reviews.
Filters combine: --group restricts to one group, --search matches the name,
--expert selects a single expert by the last segment of its W3C URI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			search, _ := cmd.Flags().GetString("search")
			group, _ := cmd.Flags().GetInt("group")
			token, _ := cmd.Flags().GetString("expert")
			histogram, _ := cmd.Flags().GetBool("histogram")
			sinceStr, _ := cmd.Flags().GetString("since")
			since, err := usecase.ParseSince(sinceStr)
			if err != nil {
				return err
			}

			return withSnapshot(cmd, func(snap *snapshot.Snapshot) error {
				res := usecase.QueryExperts(snap, usecase.ExpertQuery{
					Search:    search,
					GroupID:   group,
					Token:     token,
					Since:     since,
					Histogram: histogram,
				})
				if format == formatJSON {
					return printJSON(cmd.OutOrStdout(), res)
				}
				if err := render.Notice(cmd.OutOrStdout(), res.Notice); err != nil {
					return err
				}
				return render.Experts(cmd.OutOrStdout(), res.Experts)
			})
		},
	}

	cmd.Flags().StringP("search", "s", "", "Case-insensitive name substring")
	cmd.Flags().IntP("group", "g", 0, "Only experts participating in this group ID")
	cmd.Flags().StringP("expert", "e", "", "Single expert by URI token (e.g. 42 for https://api.w3.org/users/42)")
	cmd.Flags().String("since", "", "Only count activity on or after this date (YYYY-MM-DD)")
	cmd.Flags().Bool("histogram", false, "Include the monthly activity histogram")
	addFormatFlag(cmd)
	return cmd
}
