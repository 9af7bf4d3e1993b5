package ai

import (
	"context"

	"github.com/forkful/menusearch/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryParser derives structured filters from free-text restaurant queries.
// Implementations must be thread-safe for concurrent use.
type QueryParser interface {
	// ParseQuery analyzes a query and extracts keywords, a price ceiling,
	// a dietary term, and a location term. Implementations that cannot
	// derive structure must fall back to treating the entire input as
	// keywords rather than returning an error for unparseable text.
	ParseQuery(ctx context.Context, query string) (core.ParsedQuery, error)
}

// Unscored marks a result the scorer could not produce a judgment for.
// Callers substitute their own fallback for entries carrying this value.
const Unscored = -1.0

// RelevanceScorer judges how relevant each candidate result is to a query.
// Implementations must be thread-safe for concurrent use.
type RelevanceScorer interface {
	// ScoreRelevance returns one 0-10 relevance score per input result, in
	// input order. Entries the scorer could not judge are set to Unscored.
	// Returns an error only if no judgment could be made at all.
	ScoreRelevance(ctx context.Context, query string, results []core.Result) ([]float64, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder, QueryParser, and
// RelevanceScorer instances, ensuring they share configuration and resources
// appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryParser returns the query normalization service.
	// The returned QueryParser is safe for concurrent use.
	QueryParser() QueryParser

	// RelevanceScorer returns the result judgment service.
	// The returned RelevanceScorer is safe for concurrent use.
	RelevanceScorer() RelevanceScorer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
