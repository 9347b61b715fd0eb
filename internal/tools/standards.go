package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/render"
	"github.com/teamctx/teamctx/internal/schema"
)

// standardsSpec declares the get_coding_standards argument shape.
var standardsSpec = schema.ToolSpec{
	Name: "get_coding_standards",
	Description: "Get the team's coding standards for a language. Apply these to every " +
		"piece of code you generate — naming, formatting, error handling, testing.",
	Fields: []schema.FieldSpec{
		{
			Name: "language", Type: schema.TypeString, Required: true,
			Description: "Programming language, e.g. go, python, typescript, or 'general'",
		},
		{
			Name: "category", Type: schema.TypeEnum,
			Enum: []string{
				"naming", "formatting", "error_handling", "testing",
				"documentation", "security", "performance", "general",
			},
			Description: "Narrow to one category of standards",
		},
	},
}

// StandardsTool handles the get_coding_standards MCP tool.
type StandardsTool struct {
	rag  Retriever
	deps Deps
}

// NewStandardsTool creates a StandardsTool.
func NewStandardsTool(rag Retriever, deps Deps) *StandardsTool {
	return &StandardsTool{rag: rag, deps: deps}
}

// Definition returns the MCP tool definition for get_coding_standards.
func (t *StandardsTool) Definition() mcp.Tool {
	return standardsSpec.Tool()
}

// Handle processes the get_coding_standards tool call.
func (t *StandardsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.deps.run(ctx, standardsSpec, req, func(ctx context.Context, args map[string]any) (string, error) {
		language := strArg(args, "language")
		category := strArg(args, "category")

		sections, err := t.rag.GetCodingStandards(ctx, language, category)
		if err != nil {
			return "", err
		}
		return render.CodingStandards(language, category, sections), nil
	})
}
