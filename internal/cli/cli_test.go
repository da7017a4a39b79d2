package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/recommend"
	"github.com/okian/hackstack/pkg/logger"
)

func init() {
	logger.Init()
}

// run executes the command tree with args and returns stdout.
func run(args ...string) (string, error) {
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const seedYAML = `hackathons:
  - id: rust-nights
    title: Rust Nights
    description: Systems programming weekend
    organizer: Ferris Club
    domain: Systems
    level: advanced
    mode: online
    status: open
    days_left: 12
    participants: 40
    team_size: {min: 1, max: 3}
    tech_stack: [Rust, WebAssembly]
  - id: pixel-jam
    title: Pixel Jam
    description: Build a tiny game
    organizer: Indie Guild
    domain: Game Dev
    level: beginner
    mode: hybrid
    status: closing-soon
    days_left: 2
    participants: 120
    team_size: {min: 2, max: 4}
    tech_stack: [Unity]
`

func TestRecommendCommand(t *testing.T) {
	Convey("Given the demo catalog", t, func() {
		Convey("recommend -o json ranks the AI frontier event first", func() {
			out, err := run("recommend", "--skill", "AI", "--level", "Intermediate", "--mode", "online", "-o", "json")
			So(err, ShouldBeNil)

			var got recommendation
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Stage, ShouldEqual, string(recommend.StagePrimary))
			So(len(got.Items), ShouldBeBetweenOrEqual, 1, recommend.MaxResults)
			So(got.Items[0].ID, ShouldEqual, "ai-frontier-2026")
			So(got.Items[0].ConfidenceScore, ShouldEqual, 100)
		})

		Convey("recommend renders a table by default", func() {
			out, err := run("recommend", "--skill", "AI")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Stage: primary")
			So(out, ShouldContainSubstring, "ai-frontier-2026")
		})

		Convey("recommend without a skill fails", func() {
			_, err := run("recommend")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "skill")
		})
	})
}

func TestSearchCommand(t *testing.T) {
	Convey("Given the demo catalog", t, func() {
		Convey("search without filters returns everything", func() {
			out, err := run("search", "-o", "json")
			So(err, ShouldBeNil)

			var got searchResult
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Stage, ShouldEqual, "unfiltered")
			So(got.Count, ShouldEqual, 10)
		})

		Convey("search by mode keeps only that mode", func() {
			out, err := run("search", "--mode", "online", "-o", "json")
			So(err, ShouldBeNil)

			var got searchResult
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Stage, ShouldEqual, "strict")
			for _, h := range got.Items {
				So(h.Mode, ShouldEqual, model.ModeOnline)
			}
		})
	})

	Convey("Given a YAML seed file", t, func() {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		So(os.WriteFile(path, []byte(seedYAML), 0o600), ShouldBeNil)

		Convey("search reads the seeded catalog", func() {
			out, err := run("--seed", path, "search", "--q", "rust", "-o", "json")
			So(err, ShouldBeNil)

			var got searchResult
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got.Count, ShouldEqual, 1)
			So(got.Items[0].ID, ShouldEqual, "rust-nights")
		})

		Convey("stats counts the seeded catalog", func() {
			out, err := run("--seed", path, "stats", "-o", "json")
			So(err, ShouldBeNil)

			var got model.CatalogStats
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)
			So(got, ShouldResemble, model.CatalogStats{Total: 2, Open: 1, ClosingSoon: 1, TotalParticipants: 160})
		})

		Convey("stats renders a table", func() {
			out, err := run("--seed", path, "stats")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "160")
		})
	})
}

func TestRootCommand(t *testing.T) {
	Convey("Given the root command", t, func() {
		Convey("An unknown output format is rejected", func() {
			_, err := run("stats", "-o", "xml")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown output format")
		})

		Convey("A missing seed file is reported", func() {
			_, err := run("--seed", filepath.Join(t.TempDir(), "missing.yaml"), "stats")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "load seed file")
		})

		Convey("version prints the build info", func() {
			SetVersionInfo("1.2.3", "abc123", "today")
			defer SetVersionInfo("dev", "unknown", "unknown")
			out, err := run("version")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "hackstack 1.2.3")
			So(out, ShouldContainSubstring, "abc123")
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("truncate shortens long cells with an ellipsis", t, func() {
		So(truncate("short", 10), ShouldEqual, "short")
		So(truncate("abcdefghij", 8), ShouldEqual, "abcde...")
	})
}
