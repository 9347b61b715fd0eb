// teamctx: Team Context MCP Server
//
// An MCP server that gives AI coding agents access to the team's indexed
// code examples, design documents, coding standards, and knowledge graph,
// backed by an external RAG retrieval engine.
//
// Usage:
//
//	teamctx serve      # Start MCP server (stdio transport)
//	teamctx version    # Print version
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/teamctx/teamctx/internal/config"
	"github.com/teamctx/teamctx/internal/logging"
	ctxserver "github.com/teamctx/teamctx/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("teamctx v%s\n", ctxserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Missing required configuration fails here, before the transport
	// starts and the host considers the server alive.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel)

	s, cleanup, err := ctxserver.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Graceful shutdown on interrupt: the transport stops accepting work
	// when stdin closes; cleanup flushes the cache and telemetry.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		cleanup()
		os.Exit(0)
	}()
	defer cleanup()

	logger.Info("starting MCP server",
		"name", cfg.ServerName,
		"version", ctxserver.Version,
		"rag_url", cfg.RAGBaseURL,
		"cache_ttl", cfg.CacheTTL,
	)

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `teamctx v%s — Team Context MCP Server

Usage:
  teamctx serve      Start the MCP server (stdio transport)
  teamctx version    Print version

Configuration (environment):
  TEAMCTX_RAG_URL                RAG engine base URL (required)
  TEAMCTX_API_URL                Backend API base URL (optional)
  TEAMCTX_SERVER_NAME            Server name reported to clients (default: teamctx)
  TEAMCTX_LOG_LEVEL              debug|info|warn|error (default: info)
  TEAMCTX_CACHE_TTL_SECONDS      Result cache TTL (default: 300)
  TEAMCTX_RAG_TIMEOUT_SECONDS    Per-request timeout (default: 30)
  TEAMCTX_RETRY_MAX_ATTEMPTS     Tries per RAG request (default: 3)

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "teamctx": {
        "command": "teamctx",
        "args": ["serve"],
        "env": { "TEAMCTX_RAG_URL": "http://localhost:8001" }
      }
    }
  }
`, ctxserver.Version)
}
