package session

import (
	"context"
	"time"

	"github.com/forkful/menusearch/core"
)

// DefaultTTL is how long a cached result list stays valid.
const DefaultTTL = 15 * time.Minute

// Cache stores ranked result lists keyed by session and query.
type Cache interface {
	// Put stores the results for a query inside a session.
	Put(ctx context.Context, sessionID, query string, results []core.Result) error

	// Get returns the cached results for a query inside a session. The
	// second return value reports whether a live entry was found.
	Get(ctx context.Context, sessionID, query string) ([]core.Result, bool, error)

	// Invalidate removes every cached entry for a session.
	Invalidate(ctx context.Context, sessionID string) error

	// Close releases the cache's resources.
	Close() error
}
