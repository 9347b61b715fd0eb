package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/ragclient"
	"github.com/teamctx/teamctx/internal/render"
	"github.com/teamctx/teamctx/internal/schema"
)

// designDocsSpec declares the get_design_docs argument shape.
var designDocsSpec = schema.ToolSpec{
	Name: "get_design_docs",
	Description: "Retrieve the team's design documents. Use this before architectural " +
		"decisions to check what has already been designed, decided, or rejected.",
	Fields: []schema.FieldSpec{
		{
			Name: "query", Type: schema.TypeString, Required: true,
			Description: "Topic to look up, e.g. 'payment processing', 'session storage'",
		},
		{
			Name: "doc_type", Type: schema.TypeEnum,
			Enum:        []string{"architecture", "api", "database", "deployment", "process", "general"},
			Description: "Filter by document type",
		},
		{
			Name: "team", Type: schema.TypeString,
			Description: "Filter by owning team",
		},
		{
			Name: "project", Type: schema.TypeString,
			Description: "Filter by project",
		},
	},
}

// DesignDocsTool handles the get_design_docs MCP tool.
type DesignDocsTool struct {
	rag  Retriever
	deps Deps
}

// NewDesignDocsTool creates a DesignDocsTool.
func NewDesignDocsTool(rag Retriever, deps Deps) *DesignDocsTool {
	return &DesignDocsTool{rag: rag, deps: deps}
}

// Definition returns the MCP tool definition for get_design_docs.
func (t *DesignDocsTool) Definition() mcp.Tool {
	return designDocsSpec.Tool()
}

// Handle processes the get_design_docs tool call.
func (t *DesignDocsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.deps.run(ctx, designDocsSpec, req, func(ctx context.Context, args map[string]any) (string, error) {
		params := ragclient.DesignDocParams{
			Query:   strArg(args, "query"),
			DocType: strArg(args, "doc_type"),
			Team:    strArg(args, "team"),
			Project: strArg(args, "project"),
		}
		docs, err := t.rag.GetDesignDocs(ctx, params)
		if err != nil {
			return "", err
		}
		return render.DesignDocs(params, docs), nil
	})
}
