// Package usage records per-call telemetry in a local SQLite database.
//
// Every tool call and resource read appends one row: capability name, cache
// hit, outcome, duration. The recorder is strictly best-effort — a nil
// *Recorder is a valid no-op (mirroring how the server keeps serving when the
// database cannot be opened), and a failed write never affects the call that
// produced it.
package usage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS calls (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	call_id     TEXT    NOT NULL,
	capability  TEXT    NOT NULL,
	cache_hit   INTEGER NOT NULL,
	ok          INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TEXT    NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_calls_capability ON calls(capability);
`

// Entry is one recorded call.
type Entry struct {
	CallID     string
	Capability string
	CacheHit   bool
	OK         bool
	DurationMS int64
}

// Summary aggregates the recorded calls.
type Summary struct {
	TotalCalls    int
	Errors        int
	CacheHits     int
	PerCapability map[string]int
}

// Recorder persists call telemetry. All methods are nil-safe.
type Recorder struct {
	db *sql.DB
}

// DefaultPath returns the telemetry database location under the user cache
// directory.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache dir: %w", err)
	}
	return filepath.Join(base, "teamctx", "usage.db"), nil
}

// Open creates or opens the telemetry database at path, creating parent
// directories as needed.
func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing telemetry schema: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Record appends one call entry. No-op on a nil Recorder.
func (r *Recorder) Record(e Entry) error {
	if r == nil {
		return nil
	}
	_, err := r.db.Exec(
		`INSERT INTO calls (call_id, capability, cache_hit, ok, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		e.CallID, e.Capability, boolInt(e.CacheHit), boolInt(e.OK), e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("recording call: %w", err)
	}
	return nil
}

// Summary aggregates everything recorded so far. A nil Recorder returns an
// empty summary.
func (r *Recorder) Summary() (*Summary, error) {
	s := &Summary{PerCapability: make(map[string]int)}
	if r == nil {
		return s, nil
	}

	rows, err := r.db.Query(
		`SELECT capability, COUNT(*), SUM(cache_hit), SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END)
		 FROM calls GROUP BY capability`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying telemetry: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var capability string
		var count, hits, errCount int
		if err := rows.Scan(&capability, &count, &hits, &errCount); err != nil {
			return nil, fmt.Errorf("scanning telemetry row: %w", err)
		}
		s.PerCapability[capability] = count
		s.TotalCalls += count
		s.CacheHits += hits
		s.Errors += errCount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading telemetry rows: %w", err)
	}
	return s, nil
}

// Close releases the database handle. No-op on a nil Recorder.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
