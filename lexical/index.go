package lexical

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/forkful/menusearch/core"
)

// searchFields are the indexed fields a query is matched against, mirroring
// what the ingestion job writes: the free-text blob plus the restaurant,
// cuisine, and category labels.
var searchFields = []string{"text", "restaurant", "cuisine", "category"}

// Document is a menu item to be indexed for lexical search.
// Fields holds the complete stored field set; hits return it verbatim.
type Document struct {
	ID     string
	Fields core.Metadata
}

// Hit is a single lexical match with its text-relevance score and the
// stored fields of the document.
type Hit struct {
	ID     string
	Score  float64
	Fields core.Metadata
}

// Index is a bleve-backed full-text index over menu items.
type Index struct {
	idx    bleve.Index
	logger *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
	}
}

// Open opens an existing index at path. A missing index directory is a
// normal, recoverable condition immediately after a fresh deployment, and is
// reported as ErrIndexNotFound.
func Open(path string, opts ...Option) (*Index, error) {
	idx, err := bleve.Open(path)
	if err != nil {
		if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) || errors.Is(err, bleve.ErrorIndexMetaMissing) {
			return nil, ErrIndexNotFound
		}
		return nil, err
	}
	return wrap(idx, opts...), nil
}

// Create creates a new index at path.
func Create(path string, opts ...Option) (*Index, error) {
	idx, err := bleve.New(path, indexMapping())
	if err != nil {
		return nil, err
	}
	return wrap(idx, opts...), nil
}

// OpenInMemory creates an ephemeral in-memory index, used in tests.
func OpenInMemory(opts ...Option) (*Index, error) {
	idx, err := bleve.NewMemOnly(indexMapping())
	if err != nil {
		return nil, err
	}
	return wrap(idx, opts...), nil
}

func wrap(idx bleve.Index, opts ...Option) *Index {
	ix := &Index{
		idx:    idx,
		logger: slog.Default().With("component", "lexical-index"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// indexMapping builds the default field mapping. All fields are stored so
// hits come back with their complete payload.
func indexMapping() mapping.IndexMapping {
	return bleve.NewIndexMapping()
}

// Close closes the index.
func (ix *Index) Close() error {
	return ix.idx.Close()
}

// Index adds or replaces documents.
func (ix *Index) Index(docs ...Document) error {
	for _, doc := range docs {
		if doc.ID == "" {
			return ErrEmptyDocumentID
		}
	}

	batch := ix.idx.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.ID, map[string]any(doc.Fields)); err != nil {
			return err
		}
	}
	return ix.idx.Batch(batch)
}

// Search returns up to limit documents ranked by text relevance, matching
// the query against the text, restaurant, cuisine, and category fields.
// Stored fields are returned with each hit.
func (ix *Index) Search(ctx context.Context, queryText string, limit int) ([]Hit, error) {
	disjuncts := make([]query.Query, 0, len(searchFields))
	for _, field := range searchFields {
		match := bleve.NewMatchQuery(queryText)
		match.SetField(field)
		disjuncts = append(disjuncts, match)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(disjuncts...), limit, 0, false)
	req.Fields = []string{"*"}

	res, err := ix.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, match := range res.Hits {
		fields := make(core.Metadata, len(match.Fields)+1)
		for k, v := range match.Fields {
			fields[k] = v
		}
		if _, present := fields["id"]; !present {
			fields["id"] = match.ID
		}
		hits = append(hits, Hit{
			ID:     match.ID,
			Score:  match.Score,
			Fields: fields,
		})
	}

	ix.logger.Debug("lexical search complete", "query", queryText, "hits", len(hits))
	return hits, nil
}

// DocCount returns the number of indexed documents.
func (ix *Index) DocCount() (uint64, error) {
	return ix.idx.DocCount()
}
