package search

import (
	"sort"

	"github.com/forkful/menusearch/core"
)

// DefaultRRFK is the standard dampening constant for Reciprocal Rank Fusion.
// Larger values flatten the curve; smaller values sharply reward top ranks.
const DefaultRRFK = 60

// FuseRRF merges a semantic and a lexical result list into one ranked list
// using Reciprocal Rank Fusion: every item scores the sum of 1/(k+rank) over
// each source list it appears in, with 1-based ranks. An id absent from a
// source contributes no penalty term, so fusion degrades gracefully to
// whichever single source is non-empty.
//
// Metadata is merged semantic-first; lexical fields overwrite per field,
// being closer to the authoritative text index.
//
// Ties are broken by the id appearing in more source lists, then by
// insertion order (all semantic items in their order, then lexical-only
// items in theirs). The ordering is fully deterministic for fixed inputs.
func FuseRRF(semantic, lexical []core.Result, k int) []core.Result {
	if k <= 0 {
		k = DefaultRRFK
	}

	index := make(map[string]int, len(semantic)+len(lexical))
	fused := make([]core.Result, 0, len(semantic)+len(lexical))

	accumulate := func(list []core.Result) {
		for rank, item := range list {
			pos, seen := index[item.ID]
			if !seen {
				pos = len(fused)
				index[item.ID] = pos
				fused = append(fused, core.Result{
					ID:       item.ID,
					Metadata: core.Metadata{},
				})
			}
			fused[pos].Score += 1.0 / float64(k+rank+1)
			fused[pos].Sources++
			fused[pos].Metadata.Merge(item.Metadata)
		}
	}

	accumulate(semantic)
	accumulate(lexical)

	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].Sources > fused[j].Sources
	})

	return fused
}
