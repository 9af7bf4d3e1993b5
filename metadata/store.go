package metadata

import (
	"context"

	"github.com/forkful/menusearch/core"
)

// Store provides read access to the authoritative menu-item fields, keyed by
// the stable external identifier shared with both indexes.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// FetchByIDs retrieves authoritative fields for the given external ids.
	// Missing ids are simply absent from the returned map; only backend
	// failures produce an error.
	FetchByIDs(ctx context.Context, ids []string) (map[string]core.Metadata, error)

	// Close closes the store and releases its connection pool.
	Close() error
}

// NullStore is a Store with no backing database. Every lookup misses, so
// retrieval runs on index payloads alone.
type NullStore struct{}

// NewNullStore creates a store that never finds anything.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// FetchByIDs returns an empty map for any set of ids.
func (s *NullStore) FetchByIDs(_ context.Context, _ []string) (map[string]core.Metadata, error) {
	return map[string]core.Metadata{}, nil
}

// Close is a no-op.
func (s *NullStore) Close() error {
	return nil
}
