package vector

import (
	"context"

	"github.com/forkful/menusearch/core"
)

// Hit is a single nearest-neighbor match from the similarity store.
type Hit struct {
	// ID is the external identifier shared with the lexical index and the
	// metadata store.
	ID string

	// Score is the cosine similarity between the query vector and the item.
	Score float64

	// Payload carries the fields stored alongside the vector. It may be
	// sparse or empty; the metadata store is the authoritative source.
	Payload core.Metadata
}

// Item is a vector-indexed menu item.
type Item struct {
	ID      string
	Vector  []float32
	Payload core.Metadata
}

// Store provides nearest-neighbor search over menu-item embedding vectors.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Search returns up to limit items nearest to the query vector,
	// ordered by similarity score (highest first).
	Search(ctx context.Context, vector []float32, limit int) ([]Hit, error)

	// Add inserts or replaces items in the index.
	Add(ctx context.Context, items ...Item) error

	// Close closes the store and releases resources.
	Close() error
}
