package search

import (
	"context"
	"log/slog"

	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/lexical"
	"github.com/forkful/menusearch/metadata"
	"github.com/forkful/menusearch/vector"
)

// Retriever fetches candidate results for a query from one source.
// Result order as returned by the backing service is preserved; fusion
// re-ranks afterwards.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]core.Result, error)
}

// SemanticRetriever embeds the query, searches the vector store, and
// enriches each hit with authoritative fields from the metadata store.
// Store fields win over payload fields on conflict; hits with neither a
// store row nor a payload are dropped.
type SemanticRetriever struct {
	embedder ai.Embedder
	vectors  vector.Store
	meta     metadata.Store
	logger   *slog.Logger
}

// SemanticOption configures a SemanticRetriever.
type SemanticOption func(*SemanticRetriever)

// WithSemanticLogger sets a custom logger.
// Default is slog.Default().
func WithSemanticLogger(logger *slog.Logger) SemanticOption {
	return func(r *SemanticRetriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewSemanticRetriever creates a semantic retriever. The metadata store is
// optional; without it, hits are served from their index payloads alone.
func NewSemanticRetriever(embedder ai.Embedder, vectors vector.Store, meta metadata.Store, opts ...SemanticOption) (*SemanticRetriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	r := &SemanticRetriever{
		embedder: embedder,
		vectors:  vectors,
		meta:     meta,
		logger:   slog.Default().With("component", "semantic-retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Retrieve returns up to limit enriched results for the query.
// A metadata store failure degrades to payload-only enrichment; embedding
// and vector search failures surface as errors for the caller's fail-soft
// policy.
func (r *SemanticRetriever) Retrieve(ctx context.Context, query string, limit int) ([]core.Result, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	hits, err := r.vectors.Search(ctx, embedding, limit)
	if err != nil {
		r.logger.Error("error querying vector store", "err", err)
		return nil, err
	}
	if len(hits) == 0 {
		return []core.Result{}, nil
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}

	rows := map[string]core.Metadata{}
	if r.meta != nil {
		rows, err = r.meta.FetchByIDs(ctx, ids)
		if err != nil {
			// The store is authoritative but not essential: payloads still
			// carry enough to rank on, so enrichment degrades instead of
			// failing the whole source.
			r.logger.Warn("metadata enrichment failed, serving payload fields only", "err", err)
			rows = map[string]core.Metadata{}
		}
	}

	results := make([]core.Result, 0, len(hits))
	for _, hit := range hits {
		row := rows[hit.ID]
		if len(row) == 0 && len(hit.Payload) == 0 {
			continue
		}

		meta := make(core.Metadata, len(hit.Payload)+len(row))
		meta.Merge(hit.Payload)
		meta.Merge(row) // store fields win on conflict
		meta.Normalize()

		results = append(results, core.Result{
			ID:       hit.ID,
			Score:    hit.Score,
			Metadata: meta,
		})
	}

	return results, nil
}

// LexicalRetriever serves results from the full-text index. Its stored
// fields are already complete, so no enrichment happens. A nil index is the
// normal state before the first ingestion run and yields no results.
type LexicalRetriever struct {
	index  *lexical.Index
	logger *slog.Logger
}

// LexicalOption configures a LexicalRetriever.
type LexicalOption func(*LexicalRetriever)

// WithLexicalLogger sets a custom logger.
// Default is slog.Default().
func WithLexicalLogger(logger *slog.Logger) LexicalOption {
	return func(r *LexicalRetriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewLexicalRetriever creates a lexical retriever over the given index,
// which may be nil when no index exists yet.
func NewLexicalRetriever(index *lexical.Index, opts ...LexicalOption) *LexicalRetriever {
	r := &LexicalRetriever{
		index:  index,
		logger: slog.Default().With("component", "lexical-retriever"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns up to limit results ranked by text relevance.
func (r *LexicalRetriever) Retrieve(ctx context.Context, query string, limit int) ([]core.Result, error) {
	if r.index == nil {
		r.logger.Debug("no lexical index present, returning no results")
		return []core.Result{}, nil
	}

	hits, err := r.index.Search(ctx, query, limit)
	if err != nil {
		r.logger.Error("error querying lexical index", "err", err)
		return nil, err
	}

	results := make([]core.Result, 0, len(hits))
	for _, hit := range hits {
		meta := hit.Fields.Clone()
		meta.Normalize()
		results = append(results, core.Result{
			ID:       hit.ID,
			Score:    hit.Score,
			Metadata: meta,
		})
	}

	return results, nil
}
