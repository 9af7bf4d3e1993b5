package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/core"
	"github.com/panjf2000/ants/v2"
)

// Ranker orders retrieved items by relevance to the query, filling in the
// Relevance field of every result.
type Ranker interface {
	Rank(ctx context.Context, query string, results []core.Result) ([]core.Result, error)
}

// relevanceScale maps a fused score onto the 0-10 relevance range used by
// the LLM judge, so heuristic and judged scores stay comparable.
const relevanceScale = 10.0

// HeuristicRanker derives relevance directly from the fused retrieval
// score. It is the substitute ranking used when no LLM judge is configured
// or when judging fails.
type HeuristicRanker struct{}

// NewHeuristicRanker creates a score-derived ranker.
func NewHeuristicRanker() *HeuristicRanker {
	return &HeuristicRanker{}
}

// Rank assigns each result a relevance proportional to its fused score and
// sorts by relevance descending.
func (r *HeuristicRanker) Rank(_ context.Context, _ string, results []core.Result) ([]core.Result, error) {
	ranked := cloneResults(results)
	for i := range ranked {
		ranked[i].Relevance = ranked[i].Score * relevanceScale
	}
	sortByRelevance(ranked)
	return ranked, nil
}

const (
	defaultRankWorkers   = 4
	defaultRankBatchSize = 8
)

// LLMRanker scores results with a relevance judge, batching items across a
// worker pool so large candidate lists don't serialize behind a single
// model call. Items the judge leaves unscored fall back to the heuristic
// relevance.
type LLMRanker struct {
	scorer    ai.RelevanceScorer
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// LLMRankerOption configures an LLMRanker.
type LLMRankerOption func(*LLMRanker) error

// WithRankWorkers sets the size of the scoring worker pool.
// Default is 4.
func WithRankWorkers(workers int) LLMRankerOption {
	return func(r *LLMRanker) error {
		if workers < 1 {
			workers = 1
		}
		pool, err := ants.NewPool(workers)
		if err != nil {
			return err
		}
		r.pool.Release()
		r.pool = pool
		return nil
	}
}

// WithRankBatchSize sets how many results are judged per model call.
// Default is 8.
func WithRankBatchSize(size int) LLMRankerOption {
	return func(r *LLMRanker) error {
		if size < 1 {
			size = 1
		}
		r.batchSize = size
		return nil
	}
}

// WithRankLogger sets a custom logger.
// Default is slog.Default().
func WithRankLogger(logger *slog.Logger) LLMRankerOption {
	return func(r *LLMRanker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewLLMRanker creates a judge-backed ranker over the given scorer.
func NewLLMRanker(scorer ai.RelevanceScorer, opts ...LLMRankerOption) (*LLMRanker, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	pool, err := ants.NewPool(defaultRankWorkers)
	if err != nil {
		return nil, err
	}

	r := &LLMRanker{
		scorer:    scorer,
		pool:      pool,
		batchSize: defaultRankBatchSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Close releases the worker pool.
func (r *LLMRanker) Close() error {
	r.pool.Release()
	return nil
}

// Rank judges every result against the query and sorts by the judged
// relevance. If any batch fails, the input list is returned alongside the
// error and no partial judgments are kept; callers substitute heuristic
// ranking.
func (r *LLMRanker) Rank(ctx context.Context, query string, results []core.Result) ([]core.Result, error) {
	ranked := cloneResults(results)
	if len(ranked) == 0 {
		return ranked, nil
	}

	scores := make([]float64, len(ranked))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(ranked); start += r.batchSize {
		end := min(start+r.batchSize, len(ranked))
		batchStart, batch := start, ranked[start:end]

		wg.Add(1)
		if err := r.pool.Submit(func() {
			defer wg.Done()
			batchScores, err := r.scorer.ScoreRelevance(ctx, query, batch)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			for i, score := range batchScores {
				if batchStart+i < len(scores) {
					scores[batchStart+i] = score
				}
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		r.logger.Warn("relevance judging failed, falling back to fused scores", "err", firstErr)
		return ranked, firstErr
	}

	for i := range ranked {
		if scores[i] == ai.Unscored {
			ranked[i].Relevance = ranked[i].Score * relevanceScale
			continue
		}
		ranked[i].Relevance = scores[i]
	}
	sortByRelevance(ranked)
	return ranked, nil
}

func cloneResults(results []core.Result) []core.Result {
	cloned := make([]core.Result, len(results))
	for i, res := range results {
		cloned[i] = res.Clone()
	}
	return cloned
}

// sortByRelevance orders by relevance, breaking ties on the fused score
// and finally on ID so equal results always come back in the same order.
func sortByRelevance(results []core.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
}
