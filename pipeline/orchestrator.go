package pipeline

import (
	"context"
	"log/slog"

	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/search"
)

// Searcher is the hybrid retrieval entry point the pipeline runs over.
type Searcher interface {
	Search(ctx context.Context, req core.RetrievalRequest) ([]core.Result, error)
}

// Orchestrator runs the staged flow over a query: normalize, retrieve,
// quality-screen, verify, rank. Stages past input validation never fail
// the request; each degrades to a defined substitute instead.
type Orchestrator struct {
	searcher  Searcher
	parser    ai.QueryParser
	fallback  search.Retriever
	quality   Screen
	verify    Screen
	ranker    Ranker
	heuristic *HeuristicRanker
	logger    *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator) error

// WithParser sets the query parser used for normalization.
// Default is the heuristic parser.
func WithParser(parser ai.QueryParser) OrchestratorOption {
	return func(o *Orchestrator) error {
		if parser != nil {
			o.parser = parser
		}
		return nil
	}
}

// WithRanker sets the ranking stage.
// Default is the heuristic ranker.
func WithRanker(ranker Ranker) OrchestratorOption {
	return func(o *Orchestrator) error {
		if ranker != nil {
			o.ranker = ranker
		}
		return nil
	}
}

// WithFallbackRetriever sets the single-source retriever used when hybrid
// retrieval fails entirely. Without one, total failure yields an empty
// result list.
func WithFallbackRetriever(retriever search.Retriever) OrchestratorOption {
	return func(o *Orchestrator) error {
		o.fallback = retriever
		return nil
	}
}

// WithQualityScreen replaces the quality filter stage.
func WithQualityScreen(screen Screen) OrchestratorOption {
	return func(o *Orchestrator) error {
		if screen != nil {
			o.quality = screen
		}
		return nil
	}
}

// WithVerifyScreen replaces the verification stage.
func WithVerifyScreen(screen Screen) OrchestratorOption {
	return func(o *Orchestrator) error {
		if screen != nil {
			o.verify = screen
		}
		return nil
	}
}

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a pipeline over the given searcher.
func NewOrchestrator(searcher Searcher, opts ...OrchestratorOption) (*Orchestrator, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	o := &Orchestrator{
		searcher:  searcher,
		parser:    NewHeuristicParser(),
		quality:   NewQualityScreen(),
		verify:    NewVerifyScreen(),
		ranker:    NewHeuristicRanker(),
		heuristic: NewHeuristicRanker(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Run executes the full pipeline for a query. The returned error is
// non-nil only for invalid input; every downstream failure degrades to a
// substitute stage and the call still returns a result list.
func (o *Orchestrator) Run(ctx context.Context, query string, topK int) ([]core.Result, error) {
	if err := core.ValidateRequest(core.RetrievalRequest{Query: query, TopK: topK}); err != nil {
		return nil, err
	}
	logger := o.logger.With("component", "pipeline")

	parsed, err := o.parser.ParseQuery(ctx, query)
	if err != nil {
		logger.Warn("query parsing failed, using raw query", "err", err)
		parsed = core.ParsedQuery{Keywords: query}
	}
	req := parsed.Request(topK)
	if err := core.ValidateRequest(req); err != nil {
		logger.Warn("parsed request invalid, using raw query", "err", err)
		req = core.RetrievalRequest{Query: query, TopK: topK}
	}

	results, err := o.searcher.Search(ctx, req)
	if err != nil {
		logger.Warn("hybrid retrieval failed, trying fallback source", "err", err)
		results = o.retrieveFallback(ctx, req)
	}

	if screened, err := o.quality.Screen(ctx, results); err != nil {
		logger.Warn("quality screening failed, passing results through", "err", err)
	} else {
		results = screened
	}

	if verified, err := o.verify.Screen(ctx, results); err != nil {
		logger.Warn("verification failed, passing results through", "err", err)
	} else {
		results = verified
	}

	ranked, err := o.ranker.Rank(ctx, req.Query, results)
	if err != nil {
		logger.Warn("ranking failed, using heuristic ranking", "err", err)
		ranked, _ = o.heuristic.Rank(ctx, req.Query, results)
	}

	return ranked, nil
}
