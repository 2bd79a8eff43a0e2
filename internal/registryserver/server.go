// Package registryserver exposes a frozen registry to MCP clients as
// read-only tools.
package registryserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/moasq/capreg/internal/registry"
)

// Server serves lookups against one registry.
type Server struct {
	registry *registry.Registry
	version  string
}

// New creates a Server for reg. version is reported to clients.
func New(reg *registry.Registry, version string) *Server {
	if version == "" {
		version = "dev"
	}
	return &Server{registry: reg, version: version}
}

// MCPServer builds the MCP server with every tool added.
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "capreg",
			Version: s.version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the registry categories that hold at least one entry, in the order they were first populated, with entry counts and descriptions.",
	}, s.handleListCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entries",
		Description: "List every entry of a category in registration order. Order matters for roles (priority), permission managers and license tiers. Example: list_entries(category: \"role\")",
	}, s.handleListEntries)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entry",
		Description: "Get one entry by category and id, including its position, gating paid feature and type specific attributes. Example: get_entry(category: \"authProvider\", id: \"saml\")",
	}, s.handleGetEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "has_entry",
		Description: "Check whether an entry is registered. Use this to test for an installed edition feature without failing on absence.",
	}, s.handleHasEntry)

	return server
}

// Run serves over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer().Run(ctx, &mcp.StdioTransport{})
}
