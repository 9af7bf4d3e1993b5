package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/forkful/menusearch/core"
)

// MemoryCache is a process-local Cache for tests and single-node setups
// that don't want an on-disk store.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	results   []core.Result
	expiresAt time.Time
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithMemoryTTL sets how long cached entries stay valid.
// Default is DefaultTTL.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// withClock overrides the time source, for expiry tests.
func withClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache creates an in-memory session cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func memoryKey(sessionID, query string) string {
	return sessionID + "\x00" + query
}

// Put stores the results for a query inside a session.
func (c *MemoryCache) Put(ctx context.Context, sessionID, query string, results []core.Result) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cloned := make([]core.Result, len(results))
	for i, res := range results {
		cloned[i] = res.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memoryKey(sessionID, query)] = memoryEntry{
		results:   cloned,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Get returns the cached results for a query inside a session.
func (c *MemoryCache) Get(ctx context.Context, sessionID, query string) ([]core.Result, bool, error) {
	if sessionID == "" {
		return nil, false, ErrEmptySessionID
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.RLock()
	entry, ok := c.entries[memoryKey(sessionID, query)]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}

	cloned := make([]core.Result, len(entry.results))
	for i, res := range entry.results {
		cloned[i] = res.Clone()
	}
	return cloned, true, nil
}

// Invalidate removes every cached entry for a session.
func (c *MemoryCache) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := sessionID + "\x00"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Close is a no-op for the in-memory cache.
func (c *MemoryCache) Close() error {
	return nil
}
