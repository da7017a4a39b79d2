package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/search"
	"github.com/okian/hackstack/pkg/logger"
	"github.com/okian/hackstack/pkg/metrics"
)

// Tool names.
const (
	ToolRecommend = "recommend_hackathons"
	ToolSearch    = "search_hackathons"
)

// RecommendParams defines the arguments for the recommend_hackathons tool.
// Blank answers take the questionnaire defaults.
type RecommendParams struct {
	Skills                []string `json:"skills" jsonschema:"Domains the participant works in, e.g. AI or Web"`
	ExperienceLevel       string   `json:"experience_level,omitempty" jsonschema:"Beginner, Intermediate or Advanced"`
	PreferredMode         string   `json:"preferred_mode,omitempty" jsonschema:"online, in-person or hybrid"`
	PreviousParticipation bool     `json:"previous_participation,omitempty" jsonschema:"Whether the participant has joined a hackathon before"`
	TeamPreference        string   `json:"team_preference,omitempty" jsonschema:"Solo, Looking for team or Have team"`
	Availability          string   `json:"availability,omitempty" jsonschema:"Low, Medium or High"`
}

// RecommendResult is the structured answer of recommend_hackathons.
type RecommendResult struct {
	Stage string                 `json:"stage"`
	Items []model.Recommendation `json:"items"`
}

// SearchParams defines the arguments for the search_hackathons tool.
type SearchParams struct {
	Query  string `json:"query,omitempty" jsonschema:"Free text matched against title, description, organizer, domain and tech stack"`
	Domain string `json:"domain,omitempty" jsonschema:"Exact domain or all"`
	Mode   string `json:"mode,omitempty" jsonschema:"online, in-person, hybrid or all"`
	Level  string `json:"level,omitempty" jsonschema:"beginner, intermediate, advanced or all"`
	Status string `json:"status,omitempty" jsonschema:"open, closing-soon, ended or all"`
}

// SearchResult is the structured answer of search_hackathons.
type SearchResult struct {
	Stage string            `json:"stage"`
	Count int               `json:"count"`
	Items []model.Hackathon `json:"items"`
}

type tools struct {
	deps Dependencies
	log  logger.Logger
}

func (t *tools) register(s *sdkmcp.Server) {
	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        ToolRecommend,
		Description: "Rank hackathons for a participant profile and explain each pick",
	}, t.recommend)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        ToolSearch,
		Description: "Search the hackathon catalog, relaxing filters until something matches",
	}, t.search)
}

func (t *tools) recommend(ctx context.Context, _ *sdkmcp.CallToolRequest, params RecommendParams) (*sdkmcp.CallToolResult, RecommendResult, error) {
	recs, stage, err := t.deps.Recommend(ctx, params.profile())
	if err != nil {
		t.fail(ctx, ToolRecommend, err)
		return nil, RecommendResult{}, fmt.Errorf("%s: %w", ToolRecommend, err)
	}
	metrics.RecordMCPToolCall(ToolRecommend, "ok")
	if recs == nil {
		recs = []model.Recommendation{}
	}
	return nil, RecommendResult{Stage: string(stage), Items: recs}, nil
}

func (t *tools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchParams) (*sdkmcp.CallToolResult, SearchResult, error) {
	items, stage, err := t.deps.Search(ctx, search.Criteria{
		Query:  strings.TrimSpace(params.Query),
		Domain: params.Domain,
		Mode:   params.Mode,
		Level:  params.Level,
		Status: params.Status,
	})
	if err != nil {
		t.fail(ctx, ToolSearch, err)
		return nil, SearchResult{}, fmt.Errorf("%s: %w", ToolSearch, err)
	}
	metrics.RecordMCPToolCall(ToolSearch, "ok")
	if items == nil {
		items = []model.Hackathon{}
	}
	return nil, SearchResult{Stage: string(stage), Count: len(items), Items: items}, nil
}

func (t *tools) fail(ctx context.Context, tool string, err error) {
	metrics.RecordMCPToolCall(tool, "error")
	t.log.Warn(ctx, "tool call failed", logger.String("tool", tool), logger.Error(err))
}

// profile converts tool arguments, keeping defaults for blank answers.
func (p RecommendParams) profile() model.UserProfile {
	out := model.DefaultProfile()
	out.Skills = p.Skills
	out.PreviousParticipation = p.PreviousParticipation
	if v := strings.TrimSpace(p.ExperienceLevel); v != "" {
		out.ExperienceLevel = model.ExperienceLevel(v)
	}
	if v := strings.TrimSpace(p.PreferredMode); v != "" {
		out.PreferredMode = model.Mode(strings.ToLower(v))
	}
	if v := strings.TrimSpace(p.TeamPreference); v != "" {
		out.TeamPreference = model.TeamPreference(v)
	}
	if v := strings.TrimSpace(p.Availability); v != "" {
		out.Availability = model.Availability(v)
	}
	return out
}
