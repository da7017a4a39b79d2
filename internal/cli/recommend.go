package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/hackstack/internal/domain/model"
)

func newRecommendCmd(g *globals) *cobra.Command {
	p := model.DefaultProfile()
	var mode, level, team, availability string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank hackathons for a participant profile",
		Long: `Rank the catalog for a questionnaire answer and explain each pick.

Examples:
  hackstack recommend --skill AI --level Intermediate --mode online
  hackstack recommend --skill Web --skill Mobile --team Solo -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p.ExperienceLevel = model.ExperienceLevel(level)
			p.PreferredMode = model.Mode(strings.ToLower(mode))
			p.TeamPreference = model.TeamPreference(team)
			p.Availability = model.Availability(availability)

			svc, err := g.openService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			recs, stage, err := svc.Recommend(ctx, p)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.outputFmt, recommendation{Stage: string(stage), Items: recs})
		},
	}

	def := model.DefaultProfile()
	f := cmd.Flags()
	f.StringSliceVar(&p.Skills, "skill", nil, "skill domain, repeatable (AI, Web, Blockchain, ...)")
	f.StringVar(&level, "level", string(def.ExperienceLevel), "experience (Beginner, Intermediate, Advanced)")
	f.StringVar(&mode, "mode", string(def.PreferredMode), "preferred mode (online, in-person, hybrid)")
	f.StringVar(&team, "team", string(def.TeamPreference), "team preference (Solo, Looking for team, Have team)")
	f.StringVar(&availability, "availability", string(def.Availability), "availability (Low, Medium, High)")
	f.BoolVar(&p.PreviousParticipation, "participated", false, "has joined a hackathon before")
	return cmd
}
