// Package cache implements the in-process TTL cache for rendered tool and
// resource results.
//
// Entries are keyed by capability name plus a canonical serialization of the
// validated arguments, so logically identical calls always land on the same
// slot. The cache is a performance layer only: every operation degrades to
// "compute fresh" on failure and nothing here ever returns an error to a
// handler.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Key derives the cache key for a capability call. encoding/json writes map
// keys in sorted order, so the same argument mapping always serializes
// identically regardless of construction order.
func Key(name string, args map[string]any) (string, error) {
	if len(args) == 0 {
		return name + ":{}", nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("serializing cache key for %s: %w", name, err)
	}
	return name + ":" + string(data), nil
}

type entry struct {
	value    string
	storedAt time.Time
}

// Usage is an observability snapshot. It carries no behavioral contract.
type Usage struct {
	Keys    int
	Hits    int64
	Misses  int64
	HitRate float64
}

// Cache is a process-wide key/value store with a single configured TTL.
// Safe for concurrent use; races between identical keys are last-write-wins,
// which is fine because values are idempotent re-derivations of the same
// query.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	hits    int64
	misses  int64

	// now is overridable in tests.
	now func() time.Time
}

// New creates a Cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the stored value for key if present and not expired. Expired
// entries are treated as absent and evicted on the spot.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return "", false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		c.misses++
		return "", false
	}
	c.hits++
	return e.value, true
}

// Set stores or overwrites the entry for key, resetting its stored-at time.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// FlushAll clears every entry. Called at shutdown.
func (c *Cache) FlushAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Usage returns a snapshot of cache statistics.
func (c *Cache) Usage() Usage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u := Usage{Keys: len(c.entries), Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		u.HitRate = float64(c.hits) / float64(total) * 100
	}
	return u
}
