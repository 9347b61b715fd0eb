// Package logging configures the process-wide structured logger.
//
// The MCP transport owns stdout, so every log line goes to stderr. Components
// receive a *log.Logger via their constructors and scope it with
// With("component", ...) — there is no package-level global.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to stderr at the given level. Unknown level
// strings fall back to info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w. Used by tests to capture
// output.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "teamctx",
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// Nop returns a logger that discards everything. For tests.
func Nop() *log.Logger {
	return log.New(io.Discard)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
