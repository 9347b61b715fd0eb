package usage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRecordAndSummary(t *testing.T) {
	r := newTestRecorder(t)

	entries := []Entry{
		{CallID: "1", Capability: "search_code_examples", CacheHit: false, OK: true, DurationMS: 42},
		{CallID: "2", Capability: "search_code_examples", CacheHit: true, OK: true, DurationMS: 1},
		{CallID: "3", Capability: "get_design_docs", CacheHit: false, OK: false, DurationMS: 130},
	}
	for _, e := range entries {
		require.NoError(t, r.Record(e))
	}

	s, err := r.Summary()
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalCalls)
	assert.Equal(t, 1, s.CacheHits)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 2, s.PerCapability["search_code_examples"])
	assert.Equal(t, 1, s.PerCapability["get_design_docs"])
}

func TestSummary_Empty(t *testing.T) {
	r := newTestRecorder(t)

	s, err := r.Summary()
	require.NoError(t, err)
	assert.Zero(t, s.TotalCalls)
	assert.Empty(t, s.PerCapability)
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var r *Recorder

	assert.NoError(t, r.Record(Entry{Capability: "x"}))
	s, err := r.Summary()
	require.NoError(t, err)
	assert.Zero(t, s.TotalCalls)
	assert.NoError(t, r.Close())
}

func TestOpen_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "usage.db")
	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
}
