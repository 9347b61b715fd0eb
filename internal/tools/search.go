package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/ragclient"
	"github.com/teamctx/teamctx/internal/render"
	"github.com/teamctx/teamctx/internal/schema"
)

// searchSpec declares the search_code_examples argument shape.
var searchSpec = schema.ToolSpec{
	Name: "search_code_examples",
	Description: "Search the team's indexed code examples. Use this to find how the team " +
		"already solves a problem — auth, pagination, error handling — before writing new code.",
	Fields: []schema.FieldSpec{
		{
			Name: "query", Type: schema.TypeString, Required: true,
			Description: "What to search for — natural language or keywords",
		},
		{
			Name: "language", Type: schema.TypeString,
			Description: "Filter by programming language, e.g. go, python, typescript",
		},
		{
			Name: "framework", Type: schema.TypeString,
			Description: "Filter by framework, e.g. gin, react, django",
		},
		{
			Name: "limit", Type: schema.TypeNumber,
			Min: schema.F(1), Max: schema.F(20), Default: float64(5),
			Description: "Max results (default: 5, max: 20)",
		},
	},
}

// SearchTool handles the search_code_examples MCP tool.
type SearchTool struct {
	rag  Retriever
	deps Deps
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(rag Retriever, deps Deps) *SearchTool {
	return &SearchTool{rag: rag, deps: deps}
}

// Definition returns the MCP tool definition for search_code_examples.
func (t *SearchTool) Definition() mcp.Tool {
	return searchSpec.Tool()
}

// Handle processes the search_code_examples tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.deps.run(ctx, searchSpec, req, func(ctx context.Context, args map[string]any) (string, error) {
		params := ragclient.SearchParams{
			Query:     strArg(args, "query"),
			Language:  strArg(args, "language"),
			Framework: strArg(args, "framework"),
			Limit:     intArg(args, "limit"),
		}
		examples, err := t.rag.SearchCodeExamples(ctx, params)
		if err != nil {
			return "", err
		}
		return render.CodeExamples(params, examples), nil
	})
}
