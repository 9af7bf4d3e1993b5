package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/forkful/menusearch/core"
	"github.com/google/uuid"
)

const (
	// SourceSemantic labels the vector-similarity retrieval source.
	SourceSemantic = "semantic"
	// SourceLexical labels the full-text retrieval source.
	SourceLexical = "lexical"
)

// defaultFetchFactor is how many times top_k each retriever is asked for,
// so post-fusion filtering doesn't starve the result list.
const defaultFetchFactor = 2

// Searcher coordinates the two retrieval sources: both are dispatched
// concurrently, joined, fused with Reciprocal Rank Fusion, filtered, and
// truncated to the requested ceiling.
//
// A failing source contributes an empty list rather than failing the
// request; only the simultaneous failure of both sources surfaces as
// ErrAllSourcesFailed.
type Searcher struct {
	semantic    Retriever
	lexical     Retriever
	rrfK        int
	fetchFactor int
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithRRFK sets the Reciprocal Rank Fusion dampening constant.
// Default is DefaultRRFK.
func WithRRFK(k int) Option {
	return func(s *Searcher) error {
		if k > 0 {
			s.rrfK = k
		}
		return nil
	}
}

// WithFetchFactor sets the candidate-pool multiplier applied to top_k when
// querying each source. Default is 2.
func WithFetchFactor(factor int) Option {
	return func(s *Searcher) error {
		if factor < 1 {
			factor = 1
		}
		s.fetchFactor = factor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new hybrid searcher over the two retrieval sources.
func NewSearcher(semantic, lexical Retriever, opts ...Option) (*Searcher, error) {
	if semantic == nil {
		return nil, ErrSemanticRetrieverRequired
	}
	if lexical == nil {
		return nil, ErrLexicalRetrieverRequired
	}

	s := &Searcher{
		semantic:    semantic,
		lexical:     lexical,
		rrfK:        DefaultRRFK,
		fetchFactor: defaultFetchFactor,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the hybrid retrieval for the request.
func (s *Searcher) Search(ctx context.Context, req core.RetrievalRequest) ([]core.Result, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// sourceResult holds the outcome of a single retrieval goroutine.
type sourceResult struct {
	source  string
	results []core.Result
	err     error
}

// SearchWithMonitor runs the hybrid retrieval with monitoring callbacks at
// each stage of the process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req core.RetrievalRequest, monitor SearchMonitor) ([]core.Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateRequest(req); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	monitor.Start(requestID, req)
	logger := s.logger.With("request_id", requestID)

	// The two sources have no data dependency on each other, so both are
	// dispatched concurrently and joined before fusion. The request context
	// propagates to every backing call; on deadline expiry each source
	// contributes whatever it produced in time.
	candidates := req.TopK * s.fetchFactor

	var wg sync.WaitGroup
	outcomes := make(chan sourceResult, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results, err := s.semantic.Retrieve(ctx, req.Query, candidates)
		outcomes <- sourceResult{source: SourceSemantic, results: results, err: err}
	}()
	go func() {
		defer wg.Done()
		results, err := s.lexical.Retrieve(ctx, req.Query, candidates)
		outcomes <- sourceResult{source: SourceLexical, results: results, err: err}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var semanticResults, lexicalResults []core.Result
	failures := 0
	for outcome := range outcomes {
		if outcome.err != nil {
			failures++
			logger.Warn("retrieval source failed, continuing without it",
				"source", outcome.source, "err", outcome.err)
			monitor.SourceFailed(outcome.source, outcome.err)
			continue
		}
		switch outcome.source {
		case SourceSemantic:
			semanticResults = outcome.results
			monitor.AfterSemanticRetrieval(semanticResults)
		case SourceLexical:
			lexicalResults = outcome.results
			monitor.AfterLexicalRetrieval(lexicalResults)
		}
	}

	if failures == 2 {
		return nil, ErrAllSourcesFailed
	}

	fused := FuseRRF(semanticResults, lexicalResults, s.rrfK)
	monitor.AfterFusion(fused)

	filtered := FiltersFromRequest(req).Apply(fused)
	monitor.AfterFilter(filtered)

	if len(filtered) > req.TopK {
		filtered = filtered[:req.TopK]
	}

	logger.Debug("hybrid search complete",
		"semantic", len(semanticResults), "lexical", len(lexicalResults),
		"fused", len(fused), "returned", len(filtered))
	monitor.Finish(filtered)

	return filtered, nil
}
