// Package mcp exposes the recommendation and search operations as MCP
// tools so assistants can query the catalog.
package mcp

import (
	"context"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/recommend"
	"github.com/okian/hackstack/internal/domain/search"
	"github.com/okian/hackstack/pkg/logger"
)

// Path is where Register mounts the streamable HTTP handler.
const Path = "/mcp"

const serverName = "hackstack"

// Dependencies are the service operations the tools call.
type Dependencies interface {
	Recommend(ctx context.Context, p model.UserProfile) ([]model.Recommendation, recommend.Stage, error)
	Search(ctx context.Context, c search.Criteria) ([]model.Hackathon, search.Stage, error)
}

// NewServer builds an MCP server with every hackstack tool registered.
func NewServer(deps Dependencies, version string) *sdkmcp.Server {
	s := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)
	t := &tools{deps: deps, log: logger.Named("mcp")}
	t.register(s)
	return s
}

// Register mounts the MCP endpoint on mux.
func Register(ctx context.Context, mux *http.ServeMux, deps Dependencies, version string) {
	srv := NewServer(deps, version)
	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return srv
	}, nil)
	mux.Handle(Path, handler)
	logger.Get().Info(ctx, "mcp tools mounted", logger.String("path", Path))
}
