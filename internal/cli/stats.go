package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := g.openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			st, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.outputFmt, st)
		},
	}
}
