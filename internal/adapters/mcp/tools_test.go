package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/hackstack/internal/adapters/repository"
	service "github.com/okian/hackstack/internal/app"
	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/recommend"
	"github.com/okian/hackstack/pkg/logger"
)

func init() {
	logger.Init()
}

// connect serves the tools over an in-memory transport and returns a client session.
func connect(ctx context.Context) (*sdkmcp.ClientSession, func(), error) {
	svc := service.New()
	if err := svc.Seed(ctx, repository.DemoHackathons()); err != nil {
		return nil, nil, err
	}
	srv := NewServer(svc, "test")
	clientT, serverT := sdkmcp.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT, nil)
	if err != nil {
		return nil, nil, err
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "hackstack-test", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		_ = ss.Close()
		return nil, nil, err
	}
	return cs, func() {
		_ = cs.Close()
		_ = ss.Close()
		svc.Stop()
	}, nil
}

func textOf(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if t, ok := c.(*sdkmcp.TextContent); ok {
			return t.Text
		}
	}
	return ""
}

func TestTools(t *testing.T) {
	Convey("Given an MCP session over the demo catalog", t, func() {
		ctx := context.Background()
		cs, closeAll, err := connect(ctx)
		So(err, ShouldBeNil)
		defer closeAll()

		Convey("Both tools are listed", func() {
			res, err := cs.ListTools(ctx, nil)
			So(err, ShouldBeNil)
			names := make([]string, 0, len(res.Tools))
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}
			So(names, ShouldContain, ToolRecommend)
			So(names, ShouldContain, ToolSearch)
		})

		Convey("recommend_hackathons ranks the catalog", func() {
			res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
				Name: ToolRecommend,
				Arguments: map[string]any{
					"skills":           []string{"AI"},
					"experience_level": "Intermediate",
					"preferred_mode":   "online",
				},
			})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeFalse)

			var out RecommendResult
			So(json.Unmarshal([]byte(textOf(res)), &out), ShouldBeNil)
			So(out.Stage, ShouldEqual, "primary")
			So(len(out.Items), ShouldBeBetweenOrEqual, 1, recommend.MaxResults)
			So(out.Items[0].ID, ShouldEqual, "ai-frontier-2026")
			So(out.Items[0].ConfidenceScore, ShouldEqual, 100)
		})

		Convey("recommend_hackathons without skills is a tool error", func() {
			res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
				Name:      ToolRecommend,
				Arguments: map[string]any{"skills": []string{}},
			})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeTrue)
			So(textOf(res), ShouldContainSubstring, "skill")
		})

		Convey("search_hackathons filters by mode", func() {
			res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
				Name:      ToolSearch,
				Arguments: map[string]any{"mode": "online"},
			})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeFalse)

			var out SearchResult
			So(json.Unmarshal([]byte(textOf(res)), &out), ShouldBeNil)
			So(out.Count, ShouldEqual, len(out.Items))
			So(out.Count, ShouldBeGreaterThan, 0)
			for _, h := range out.Items {
				So(h.Mode, ShouldEqual, model.ModeOnline)
			}
		})
	})
}

func TestRecommendParamsProfile(t *testing.T) {
	Convey("Given recommend tool arguments", t, func() {
		Convey("Blank answers keep the questionnaire defaults", func() {
			p := RecommendParams{Skills: []string{"Web"}}.profile()
			def := model.DefaultProfile()
			So(p.Skills, ShouldResemble, []string{"Web"})
			So(p.ExperienceLevel, ShouldEqual, def.ExperienceLevel)
			So(p.PreferredMode, ShouldEqual, def.PreferredMode)
			So(p.TeamPreference, ShouldEqual, def.TeamPreference)
			So(p.Availability, ShouldEqual, def.Availability)
		})

		Convey("Given answers override the defaults", func() {
			p := RecommendParams{
				Skills:                []string{"AI"},
				ExperienceLevel:       "Advanced",
				PreferredMode:         " Online ",
				PreviousParticipation: true,
				TeamPreference:        "Solo",
				Availability:          "High",
			}.profile()
			So(p.ExperienceLevel, ShouldEqual, model.ExperienceAdvanced)
			So(p.PreferredMode, ShouldEqual, model.ModeOnline)
			So(p.PreviousParticipation, ShouldBeTrue)
			So(p.TeamPreference, ShouldEqual, model.TeamSolo)
			So(p.Availability, ShouldEqual, model.AvailabilityHigh)
		})
	})
}
