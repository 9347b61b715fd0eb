package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward explicitly.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(ttl)
	c.now = clock.Now
	return c, clock
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("k", "rendered")
	got, ok := c.Get("k")

	require.True(t, ok)
	assert.Equal(t, "rendered", got)
}

func TestCache_MissingKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCache_ExpiredEntryIsAbsent(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("k", "v")
	clock.Advance(time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok, "entry at exactly TTL must be treated as expired")

	// Expiry evicts: the slot is empty afterwards.
	assert.Equal(t, 0, c.Usage().Keys)
}

func TestCache_SetResetsStoredAt(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("k", "old")
	clock.Advance(45 * time.Second)
	c.Set("k", "new")
	clock.Advance(45 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok, "rewrite must reset the TTL window")
	assert.Equal(t, "new", got)
}

func TestCache_FlushAll(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.FlushAll()

	assert.Equal(t, 0, c.Usage().Keys)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_Usage(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("k", "v")
	c.Get("k")     // hit
	c.Get("other") // miss
	c.Get("k")     // hit

	u := c.Usage()
	assert.Equal(t, 1, u.Keys)
	assert.Equal(t, int64(2), u.Hits)
	assert.Equal(t, int64(1), u.Misses)
	assert.InDelta(t, 66.6, u.HitRate, 0.1)
}

func TestKey_OrderStable(t *testing.T) {
	a := map[string]any{"query": "auth", "limit": float64(5), "language": "go"}
	b := map[string]any{"language": "go", "limit": float64(5), "query": "auth"}

	ka, err := Key("search_code_examples", a)
	require.NoError(t, err)
	kb, err := Key("search_code_examples", b)
	require.NoError(t, err)

	assert.Equal(t, ka, kb)
}

func TestKey_DistinguishesArguments(t *testing.T) {
	k1, err := Key("tool", map[string]any{"query": "a"})
	require.NoError(t, err)
	k2, err := Key("tool", map[string]any{"query": "b"})
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestKey_EmptyArgs(t *testing.T) {
	k, err := Key("get_stats", nil)
	require.NoError(t, err)
	assert.Equal(t, "get_stats:{}", k)
}

func TestKey_SerializationFailure(t *testing.T) {
	_, err := Key("tool", map[string]any{"bad": func() {}})
	assert.Error(t, err)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				c.Set(key, "v")
				c.Get(key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	assert.Equal(t, 10, c.Usage().Keys)
}
