// Package cli implements the hackstack command line: offline recommendation
// and search over a seeded catalog, plus a smoke test against a live server.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/hackstack/internal/adapters/repository"
	service "github.com/okian/hackstack/internal/app"
	"github.com/okian/hackstack/pkg/logger"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// SetVersionInfo sets version information from build flags.
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	seedFile  string
	outputFmt string
	logLevel  string
}

// NewRootCommand builds the hackstack command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "hackstack",
		Short: "Hackathon recommendations and search from the command line",
		Long: `hackstack ranks hackathons for a participant profile and searches the
catalog with progressively relaxed filters.

Commands run against the built-in demo catalog unless --seed points at a
YAML, JSON or TOML catalog file. "hackstack smoke" checks a running server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validFormat(g.outputFmt); err != nil {
				return err
			}
			return logger.SetLevelString(g.logLevel)
		},
	}

	root.PersistentFlags().StringVar(&g.seedFile, "seed", "",
		"catalog seed file (.yaml, .json or .toml); defaults to the demo catalog")
	root.PersistentFlags().StringVarP(&g.outputFmt, "output", "o", formatTable,
		"output format (table, json)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")

	root.AddCommand(
		newRecommendCmd(g),
		newSearchCmd(g),
		newStatsCmd(g),
		newSmokeCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// openService loads the catalog the flags select into an in-memory service.
func (g *globals) openService(ctx context.Context) (*service.Service, error) {
	records := repository.DemoHackathons()
	if g.seedFile != "" {
		loaded, err := repository.LoadSeedFile(g.seedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed file: %w", err)
		}
		records = loaded
	}
	svc := service.New(service.WithCatalog(repository.NewMemoryStore()))
	if err := svc.Seed(ctx, records); err != nil {
		return nil, err
	}
	return svc, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hackstack %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", buildTime)
		},
	}
}
