// Package resources implements the MCP resource handlers.
//
// Resources are read-only documents addressed by context:// URIs. They run
// the same pipeline as tools — cache lookup, retrieval, render, cache store —
// minus validation, since resources take no arguments.
package resources

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/cache"
	"github.com/teamctx/teamctx/internal/fault"
	"github.com/teamctx/teamctx/internal/ragclient"
	"github.com/teamctx/teamctx/internal/render"
	"github.com/teamctx/teamctx/internal/usage"
)

// Resource URIs served by this package.
const (
	KnowledgeBaseURI = "context://team/knowledge-base"
	StandardsURI     = "context://standards/coding"
	PatternsURI      = "context://patterns/design"
)

const markdownMIME = "text/markdown"

var errReadSanitized = errors.New("retrieval backend is unavailable, try again later")

// retriever is the slice of the RAG adapter the resources need.
type retriever interface {
	GetKnowledgeBaseStats(ctx context.Context) (*ragclient.Stats, error)
	GetCodingStandards(ctx context.Context, language, category string) (map[string]any, error)
	GetDesignDocs(ctx context.Context, params ragclient.DesignDocParams) ([]ragclient.DesignDoc, error)
}

// Handler serves the context:// resources.
type Handler struct {
	rag    retriever
	cache  *cache.Cache
	usage  *usage.Recorder
	logger *log.Logger
}

// NewHandler creates a resource Handler with its dependencies. The usage
// recorder may be nil.
func NewHandler(rag retriever, c *cache.Cache, u *usage.Recorder, logger *log.Logger) *Handler {
	return &Handler{rag: rag, cache: c, usage: u, logger: logger}
}

// KnowledgeBaseResource describes the knowledge-base overview resource.
func (h *Handler) KnowledgeBaseResource() mcp.Resource {
	return mcp.NewResource(
		KnowledgeBaseURI,
		"Team Knowledge Base",
		mcp.WithResourceDescription("Overview of the team knowledge base: document counts, languages, graph size"),
		mcp.WithMIMEType(markdownMIME),
	)
}

// HandleKnowledgeBase renders the knowledge-base overview.
func (h *Handler) HandleKnowledgeBase(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.read(ctx, req.Params.URI, func(ctx context.Context) (string, error) {
		stats, err := h.rag.GetKnowledgeBaseStats(ctx)
		if err != nil {
			return "", err
		}
		return render.KnowledgeBaseStats(stats), nil
	})
}

// StandardsResource describes the coding-standards overview resource.
func (h *Handler) StandardsResource() mcp.Resource {
	return mcp.NewResource(
		StandardsURI,
		"Coding Standards",
		mcp.WithResourceDescription("The team's cross-language coding standards overview"),
		mcp.WithMIMEType(markdownMIME),
	)
}

// HandleStandards renders the general coding-standards overview.
func (h *Handler) HandleStandards(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.read(ctx, req.Params.URI, func(ctx context.Context) (string, error) {
		sections, err := h.rag.GetCodingStandards(ctx, "general", "")
		if err != nil {
			return "", err
		}
		return render.CodingStandards("general", "", sections), nil
	})
}

// PatternsResource describes the design-patterns digest resource.
func (h *Handler) PatternsResource() mcp.Resource {
	return mcp.NewResource(
		PatternsURI,
		"Design Patterns",
		mcp.WithResourceDescription("Digest of the team's architecture design documents and patterns"),
		mcp.WithMIMEType(markdownMIME),
	)
}

// HandlePatterns renders the design-patterns digest.
func (h *Handler) HandlePatterns(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.read(ctx, req.Params.URI, func(ctx context.Context) (string, error) {
		params := ragclient.DesignDocParams{Query: "design patterns", DocType: "architecture"}
		docs, err := h.rag.GetDesignDocs(ctx, params)
		if err != nil {
			return "", err
		}
		return render.DesignDocs(params, docs), nil
	})
}

// read runs the shared resource pipeline for one URI.
func (h *Handler) read(ctx context.Context, uri string, fetch func(context.Context) (string, error)) ([]mcp.ResourceContents, error) {
	start := time.Now()
	callID := uuid.NewString()
	logger := h.logger.With("resource", uri, "call_id", callID)

	key := "resource:" + uri
	if text, ok := h.cache.Get(key); ok {
		logger.Info("resource read", "outcome", "ok", "cache", "hit",
			"duration", time.Since(start))
		h.record(callID, uri, true, true, start)
		return contents(uri, text), nil
	}

	text, err := fetch(ctx)
	if err != nil {
		var up *fault.UpstreamError
		if errors.As(err, &up) {
			logger.Error("resource read", "outcome", "upstream_error", "cache", "miss",
				"op", up.Op, "status", up.Status, "err", up.Err,
				"duration", time.Since(start))
		} else {
			logger.Error("resource read", "outcome", "internal_error", "cache", "miss",
				"err", err, "duration", time.Since(start))
		}
		h.record(callID, uri, false, false, start)
		return nil, errReadSanitized
	}

	h.cache.Set(key, text)
	logger.Info("resource read", "outcome", "ok", "cache", "miss",
		"duration", time.Since(start))
	h.record(callID, uri, false, true, start)
	return contents(uri, text), nil
}

func (h *Handler) record(callID, uri string, hit, ok bool, start time.Time) {
	err := h.usage.Record(usage.Entry{
		CallID:     callID,
		Capability: uri,
		CacheHit:   hit,
		OK:         ok,
		DurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		h.logger.Warn("usage recording failed", "err", err)
	}
}

func contents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: markdownMIME,
			Text:     text,
		},
	}
}
