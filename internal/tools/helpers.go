// Package tools implements the MCP tool handlers.
//
// Each tool is one file: a struct carrying its dependencies, a Definition()
// built from the tool's schema.ToolSpec, and a Handle() that delegates to the
// shared pipeline. The pipeline runs every call the same way:
//
//	validate → cache lookup → retrieve → render → cache store
//
// so adding a tool means writing a spec, a retrieve step, and a render step —
// never touching control flow. Validation failures surface verbatim as tool
// errors; backend failures are logged in full and surfaced as a sanitized
// internal error; cache problems are logged and ignored.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/cache"
	"github.com/teamctx/teamctx/internal/fault"
	"github.com/teamctx/teamctx/internal/schema"
	"github.com/teamctx/teamctx/internal/usage"
)

// errUpstreamSanitized is what callers see when the retrieval backend fails.
// The real error goes to the log, never across the protocol boundary.
var errUpstreamSanitized = errors.New("retrieval backend is unavailable, try again later")

// Deps bundles what every tool handler needs. Usage may be nil.
type Deps struct {
	Cache  *cache.Cache
	Usage  *usage.Recorder
	Logger *log.Logger
}

// fetchFunc retrieves and renders one capability's result. It receives the
// validated, normalized argument map — never raw caller input.
type fetchFunc func(ctx context.Context, args map[string]any) (string, error)

// run executes the shared call pipeline for one tool invocation.
func (d Deps) run(ctx context.Context, spec schema.ToolSpec, req mcp.CallToolRequest, fetch fetchFunc) (*mcp.CallToolResult, error) {
	start := time.Now()
	callID := uuid.NewString()
	logger := d.Logger.With("tool", spec.Name, "call_id", callID)

	args, err := spec.Validate(req.GetArguments())
	if err != nil {
		logger.Info("tool call", "outcome", "invalid_arguments", "err", err,
			"duration", time.Since(start))
		d.record(callID, spec.Name, false, false, start)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key, keyErr := cache.Key(spec.Name, args)
	if keyErr != nil {
		// Degrade to compute-fresh; the call itself must not fail.
		logger.Warn("cache key derivation failed", "err", keyErr)
	}

	if keyErr == nil {
		if text, ok := d.Cache.Get(key); ok {
			logger.Info("tool call", "outcome", "ok", "cache", "hit",
				"duration", time.Since(start))
			d.record(callID, spec.Name, true, true, start)
			return mcp.NewToolResultText(text), nil
		}
	}

	text, err := fetch(ctx, args)
	if err != nil {
		var up *fault.UpstreamError
		if errors.As(err, &up) {
			logger.Error("tool call", "outcome", "upstream_error", "cache", "miss",
				"op", up.Op, "status", up.Status, "err", up.Err,
				"duration", time.Since(start))
		} else {
			logger.Error("tool call", "outcome", "internal_error", "cache", "miss",
				"err", err, "duration", time.Since(start))
		}
		d.record(callID, spec.Name, false, false, start)
		return nil, errUpstreamSanitized
	}

	if keyErr == nil {
		d.Cache.Set(key, text)
	}

	logger.Info("tool call", "outcome", "ok", "cache", "miss",
		"duration", time.Since(start))
	d.record(callID, spec.Name, false, true, start)
	return mcp.NewToolResultText(text), nil
}

func (d Deps) record(callID, capability string, hit, ok bool, start time.Time) {
	err := d.Usage.Record(usage.Entry{
		CallID:     callID,
		Capability: capability,
		CacheHit:   hit,
		OK:         ok,
		DurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		d.Logger.Warn("usage recording failed", "err", err)
	}
}

// strArg reads a string from a normalized argument map. Absent keys return
// the empty string — validation has already enforced required fields.
func strArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// intArg reads a normalized number (always float64 after validation).
func intArg(args map[string]any, key string) int {
	v, _ := args[key].(float64)
	return int(v)
}
