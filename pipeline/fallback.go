package pipeline

import (
	"context"

	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/search"
)

// fallbackFetchFactor matches the hybrid searcher's candidate-pool
// multiplier so filters applied here see a comparable pool.
const fallbackFetchFactor = 2

// retrieveFallback runs the single-source fallback retriever after a total
// hybrid failure, applying the same post-retrieval filters the searcher
// would. A missing or failing fallback yields an empty list.
func (o *Orchestrator) retrieveFallback(ctx context.Context, req core.RetrievalRequest) []core.Result {
	if o.fallback == nil {
		o.logger.Warn("no fallback retriever configured, returning empty results")
		return nil
	}

	results, err := o.fallback.Retrieve(ctx, req.Query, req.TopK*fallbackFetchFactor)
	if err != nil {
		o.logger.Warn("fallback retrieval failed, returning empty results", "err", err)
		return nil
	}

	filtered := search.FiltersFromRequest(req).Apply(results)
	if len(filtered) > req.TopK {
		filtered = filtered[:req.TopK]
	}
	return filtered
}
