package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/hackstack/internal/smoke"
)

func newSmokeCmd(g *globals) *cobra.Command {
	cfg := smoke.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Exercise a running hackstack server end to end",
		Long: `Host random hackathons on a running server, check the recommendation
and search answers, then delete everything the run created.

Examples:
  hackstack smoke
  hackstack smoke --url http://localhost:8080 --hackathons 50 --workers 8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := smoke.Run(cmd.Context(), cfg)
			if stats != nil {
				if rerr := render(cmd.OutOrStdout(), g.outputFmt, *stats); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the service")
	f.IntVar(&cfg.Hackathons, "hackathons", cfg.Hackathons, "number of hackathons to host")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	f.BoolVar(&cfg.Verbose, "verbose", false, "log every hosted hackathon")
	return cmd
}
