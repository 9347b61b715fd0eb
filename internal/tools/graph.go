package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/ragclient"
	"github.com/teamctx/teamctx/internal/render"
	"github.com/teamctx/teamctx/internal/schema"
)

// graphSpec declares the query_knowledge_graph argument shape.
var graphSpec = schema.ToolSpec{
	Name: "query_knowledge_graph",
	Description: "Traverse the team knowledge graph from an entity — a service, module, " +
		"or concept — to see what it depends on, implements, or relates to.",
	Fields: []schema.FieldSpec{
		{
			Name: "entity", Type: schema.TypeString, Required: true,
			Description: "Entity to start from, e.g. 'PaymentService'",
		},
		{
			Name: "relation_type", Type: schema.TypeEnum,
			Enum:        []string{"depends_on", "implements", "uses", "part_of", "relates_to"},
			Description: "Follow only this relation type",
		},
		{
			Name: "depth", Type: schema.TypeNumber,
			Min: schema.F(1), Max: schema.F(5), Default: float64(2),
			Description: "Traversal depth (default: 2, max: 5)",
		},
	},
}

// GraphTool handles the query_knowledge_graph MCP tool.
type GraphTool struct {
	rag  Retriever
	deps Deps
}

// NewGraphTool creates a GraphTool.
func NewGraphTool(rag Retriever, deps Deps) *GraphTool {
	return &GraphTool{rag: rag, deps: deps}
}

// Definition returns the MCP tool definition for query_knowledge_graph.
func (t *GraphTool) Definition() mcp.Tool {
	return graphSpec.Tool()
}

// Handle processes the query_knowledge_graph tool call.
func (t *GraphTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.deps.run(ctx, graphSpec, req, func(ctx context.Context, args map[string]any) (string, error) {
		query := ragclient.GraphQuery{
			Entity:       strArg(args, "entity"),
			RelationType: strArg(args, "relation_type"),
			Depth:        intArg(args, "depth"),
		}
		answer, err := t.rag.QueryKnowledgeGraph(ctx, query)
		if err != nil {
			return "", err
		}
		return render.KnowledgeGraph(query, answer), nil
	})
}
