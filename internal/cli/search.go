package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/hackstack/internal/domain/search"
)

func newSearchCmd(g *globals) *cobra.Command {
	var c search.Criteria

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog, relaxing filters until something matches",
		Long: `Search hackathons by free text and selectors.

Examples:
  hackstack search --q ai
  hackstack search --q blockchain --mode online --level beginner`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c.Query = strings.TrimSpace(c.Query)

			svc, err := g.openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			items, stage, err := svc.Search(ctx, c)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.outputFmt, searchResult{Stage: string(stage), Count: len(items), Items: items})
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.Query, "q", "", "free text over title, description, organizer, domain and tech stack")
	f.StringVar(&c.Domain, "domain", search.All, "domain or all")
	f.StringVar(&c.Mode, "mode", search.All, "online, in-person, hybrid or all")
	f.StringVar(&c.Level, "level", search.All, "beginner, intermediate, advanced or all")
	f.StringVar(&c.Status, "status", search.All, "open, closing-soon, ended or all")
	return cmd
}
