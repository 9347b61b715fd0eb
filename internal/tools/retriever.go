package tools

import (
	"context"

	"github.com/teamctx/teamctx/internal/ragclient"
)

// Retriever is the seam to the external retrieval engine. ragclient.Client
// satisfies it; tests substitute a counting stub. Implementations own their
// timeout and retry policy — handlers treat any returned error as an
// upstream failure.
type Retriever interface {
	SearchCodeExamples(ctx context.Context, params ragclient.SearchParams) ([]ragclient.CodeExample, error)
	GetDesignDocs(ctx context.Context, params ragclient.DesignDocParams) ([]ragclient.DesignDoc, error)
	GetCodingStandards(ctx context.Context, language, category string) (map[string]any, error)
	QueryKnowledgeGraph(ctx context.Context, query ragclient.GraphQuery) (*ragclient.GraphAnswer, error)
	GetKnowledgeBaseStats(ctx context.Context) (*ragclient.Stats, error)
}
