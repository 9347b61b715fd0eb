// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the cache, the RAG client, and the
// usage recorder, and injects them into the tool and resource handlers. No
// business logic lives here — only wiring.
package server

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/teamctx/teamctx/internal/cache"
	"github.com/teamctx/teamctx/internal/config"
	"github.com/teamctx/teamctx/internal/ragclient"
	"github.com/teamctx/teamctx/internal/resources"
	"github.com/teamctx/teamctx/internal/tools"
	"github.com/teamctx/teamctx/internal/usage"
)

// Version is set at build time via ldflags.
var Version = "dev"

// usageDBPath is a package-level var to allow test injection.
var usageDBPath = usage.DefaultPath

// New creates and configures the MCP server with all tools and resources
// registered. This is the single place where all dependencies are resolved.
//
// The returned cleanup function logs the usage summary, flushes the cache,
// and closes the telemetry database. It must be called on shutdown (typically
// via defer) and is always non-nil.
func New(cfg *config.Config, logger *log.Logger) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	store := cache.New(cfg.CacheTTL)

	rag := ragclient.New(ragclient.Options{
		BaseURL:     cfg.RAGBaseURL,
		Timeout:     cfg.RAGTimeout,
		MaxAttempts: cfg.RetryMaxAttempts,
		Logger:      logger,
	})

	// Telemetry is an independent subsystem: if its database cannot be
	// opened, every tool keeps working. Handlers are nil-safe around the
	// recorder.
	var recorder *usage.Recorder
	if path, err := usageDBPath(); err != nil {
		logger.Warn("usage telemetry disabled", "err", err)
	} else if recorder, err = usage.Open(path); err != nil {
		logger.Warn("usage telemetry disabled", "err", err)
		recorder = nil
	}

	deps := tools.Deps{Cache: store, Usage: recorder, Logger: logger}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		cfg.ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	searchTool := tools.NewSearchTool(rag, deps)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	designDocsTool := tools.NewDesignDocsTool(rag, deps)
	s.AddTool(designDocsTool.Definition(), designDocsTool.Handle)

	standardsTool := tools.NewStandardsTool(rag, deps)
	s.AddTool(standardsTool.Definition(), standardsTool.Handle)

	graphTool := tools.NewGraphTool(rag, deps)
	s.AddTool(graphTool.Definition(), graphTool.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(rag, store, recorder, logger)
	s.AddResource(resourceHandler.KnowledgeBaseResource(), resourceHandler.HandleKnowledgeBase)
	s.AddResource(resourceHandler.StandardsResource(), resourceHandler.HandleStandards)
	s.AddResource(resourceHandler.PatternsResource(), resourceHandler.HandlePatterns)

	cleanup := func() {
		if summary, err := recorder.Summary(); err != nil {
			logger.Warn("usage summary unavailable", "err", err)
		} else if summary.TotalCalls > 0 {
			logger.Info("usage summary",
				"calls", summary.TotalCalls,
				"cache_hits", summary.CacheHits,
				"errors", summary.Errors,
			)
		}

		u := store.Usage()
		logger.Info("cache flushed", "keys", u.Keys, "hit_rate", u.HitRate)
		store.FlushAll()

		if err := recorder.Close(); err != nil {
			logger.Warn("telemetry close", "err", err)
		}
	}

	return s, cleanup, nil
}

// serverInstructions returns the system instructions that tell the AI host
// how to use teamctx effectively.
func serverInstructions() string {
	return `You have access to teamctx, the team's context server. It exposes the team's
indexed code examples, design documents, coding standards, and knowledge graph.

## When to use teamctx

- Before writing new code: call search_code_examples to see how the team
  already solves the problem. Prefer existing patterns over inventing new ones.
- Before architectural decisions: call get_design_docs to check what has been
  designed, decided, or explicitly rejected.
- Before generating code in any language: call get_coding_standards for that
  language and apply the standards to everything you produce.
- When you need to understand how systems connect: call query_knowledge_graph
  with a service or module name.

## Tools

- search_code_examples(query, language?, framework?, limit?) — ranked code search
- get_design_docs(query, doc_type?, team?, project?) — design document lookup
- get_coding_standards(language, category?) — the team's standards for a language
- query_knowledge_graph(entity, relation_type?, depth?) — graph traversal

## Resources

- context://team/knowledge-base — what the knowledge base contains
- context://standards/coding — cross-language standards overview
- context://patterns/design — architecture patterns digest

Results are cached for a few minutes: repeating an identical query is cheap.
Queries work best as short natural language, not keywords: "how do we paginate
list endpoints" beats "pagination".`
}
