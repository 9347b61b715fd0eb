package resources

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamctx/teamctx/internal/cache"
	"github.com/teamctx/teamctx/internal/fault"
	"github.com/teamctx/teamctx/internal/logging"
	"github.com/teamctx/teamctx/internal/ragclient"
)

type stubRetriever struct {
	calls atomic.Int32

	stats     *ragclient.Stats
	standards map[string]any
	docs      []ragclient.DesignDoc
	err       error
}

func (s *stubRetriever) GetKnowledgeBaseStats(ctx context.Context) (*ragclient.Stats, error) {
	s.calls.Add(1)
	return s.stats, s.err
}

func (s *stubRetriever) GetCodingStandards(ctx context.Context, language, category string) (map[string]any, error) {
	s.calls.Add(1)
	return s.standards, s.err
}

func (s *stubRetriever) GetDesignDocs(ctx context.Context, params ragclient.DesignDocParams) ([]ragclient.DesignDoc, error) {
	s.calls.Add(1)
	return s.docs, s.err
}

func newTestHandler(stub *stubRetriever) *Handler {
	return NewHandler(stub, cache.New(time.Minute), nil, logging.Nop())
}

func makeReadReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func contentText(t *testing.T, c []mcp.ResourceContents) string {
	t.Helper()
	require.Len(t, c, 1)
	tc, ok := c[0].(mcp.TextResourceContents)
	require.True(t, ok)
	return tc.Text
}

func TestDefinitions(t *testing.T) {
	h := newTestHandler(&stubRetriever{})

	tests := []struct {
		res  mcp.Resource
		uri  string
		name string
	}{
		{h.KnowledgeBaseResource(), KnowledgeBaseURI, "Team Knowledge Base"},
		{h.StandardsResource(), StandardsURI, "Coding Standards"},
		{h.PatternsResource(), PatternsURI, "Design Patterns"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.uri, tt.res.URI)
		assert.Equal(t, tt.name, tt.res.Name)
		assert.Equal(t, "text/markdown", tt.res.MIMEType)
	}
}

func TestHandleKnowledgeBase(t *testing.T) {
	stub := &stubRetriever{stats: &ragclient.Stats{Documents: 42, Entities: 7}}
	h := newTestHandler(stub)

	c, err := h.HandleKnowledgeBase(context.Background(), makeReadReq(KnowledgeBaseURI))
	require.NoError(t, err)

	text := contentText(t, c)
	assert.Contains(t, text, "## Team Knowledge Base")
	assert.Contains(t, text, "Documents: 42")
}

func TestHandleStandards(t *testing.T) {
	stub := &stubRetriever{standards: map[string]any{
		"naming_conventions": map[string]any{"function": "snake_case"},
	}}
	h := newTestHandler(stub)

	c, err := h.HandleStandards(context.Background(), makeReadReq(StandardsURI))
	require.NoError(t, err)
	assert.Contains(t, contentText(t, c), "### Naming Conventions")
}

func TestHandlePatterns(t *testing.T) {
	stub := &stubRetriever{docs: []ragclient.DesignDoc{{Title: "CQRS in billing"}}}
	h := newTestHandler(stub)

	c, err := h.HandlePatterns(context.Background(), makeReadReq(PatternsURI))
	require.NoError(t, err)
	assert.Contains(t, contentText(t, c), "CQRS in billing")
}

func TestRead_CachesSecondRead(t *testing.T) {
	stub := &stubRetriever{stats: &ragclient.Stats{Documents: 1}}
	h := newTestHandler(stub)
	req := makeReadReq(KnowledgeBaseURI)

	first, err := h.HandleKnowledgeBase(context.Background(), req)
	require.NoError(t, err)
	second, err := h.HandleKnowledgeBase(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, contentText(t, first), contentText(t, second))
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestRead_UpstreamFailureSanitized(t *testing.T) {
	stub := &stubRetriever{err: fault.Upstream("get knowledge base stats", 500,
		errors.New("pg: connection reset at 10.0.3.7"))}
	h := newTestHandler(stub)

	_, err := h.HandleKnowledgeBase(context.Background(), makeReadReq(KnowledgeBaseURI))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "10.0.3.7")
}
