package registryserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/moasq/capreg/internal/capability"
	"github.com/moasq/capreg/internal/registry"
)

type listCategoriesInput struct{}

type categoryInfo struct {
	Category    string `json:"category"`
	Count       int    `json:"count"`
	Description string `json:"description,omitempty"`
	Ordered     bool   `json:"ordered"`
}

type listCategoriesOutput struct {
	Categories []categoryInfo `json:"categories"`
}

func (s *Server) handleListCategories(ctx context.Context, req *mcp.CallToolRequest, input listCategoriesInput) (*mcp.CallToolResult, listCategoriesOutput, error) {
	out := listCategoriesOutput{Categories: []categoryInfo{}}
	for _, cat := range s.registry.Categories() {
		info := categoryInfo{Category: string(cat), Count: s.registry.Len(cat)}
		if known, ok := capability.Describe(cat); ok {
			info.Description = known.Description
			info.Ordered = known.Ordered
		}
		out.Categories = append(out.Categories, info)
	}
	return nil, out, nil
}

type listEntriesInput struct {
	Category string `json:"category" jsonschema:"Category name e.g. role or authProvider"`
}

type listEntriesOutput struct {
	Category string               `json:"category"`
	Entries  []capability.Summary `json:"entries"`
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, listEntriesOutput, error) {
	cat := registry.Category(input.Category)
	if err := registry.ValidateCategory(cat); err != nil {
		return nil, listEntriesOutput{}, err
	}
	return nil, listEntriesOutput{
		Category: input.Category,
		Entries:  capability.SummarizeAll(s.registry, cat),
	}, nil
}

type entryInput struct {
	Category string `json:"category" jsonschema:"Category name e.g. authProvider"`
	ID       string `json:"id" jsonschema:"Entry identifier within the category e.g. saml"`
}

func (s *Server) handleGetEntry(ctx context.Context, req *mcp.CallToolRequest, input entryInput) (*mcp.CallToolResult, capability.Summary, error) {
	sum, err := capability.SummarizeOne(s.registry, registry.Category(input.Category), input.ID)
	if err != nil {
		return nil, capability.Summary{}, fmt.Errorf("get_entry: %w", err)
	}
	return nil, sum, nil
}

type hasEntryOutput struct {
	Registered bool `json:"registered"`
}

func (s *Server) handleHasEntry(ctx context.Context, req *mcp.CallToolRequest, input entryInput) (*mcp.CallToolResult, hasEntryOutput, error) {
	return nil, hasEntryOutput{Registered: s.registry.Has(registry.Category(input.Category), input.ID)}, nil
}
