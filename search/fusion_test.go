package search

import (
	"testing"

	"github.com/forkful/menusearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(id string, score float64) core.Result {
	return core.Result{ID: id, Score: score, Metadata: core.Metadata{"id": id}}
}

func TestFuseRRF(t *testing.T) {
	t.Run("item in both sources outranks single-source items", func(t *testing.T) {
		semantic := []core.Result{result("a", 0.9), result("b", 0.8)}
		lexical := []core.Result{result("a", 4.2)}

		fused := FuseRRF(semantic, lexical, DefaultRRFK)
		require.Len(t, fused, 2)

		assert.Equal(t, "a", fused[0].ID)
		assert.Equal(t, "b", fused[1].ID)
		assert.Equal(t, 2, fused[0].Sources)
		assert.Equal(t, 1, fused[1].Sources)

		// a: rank 1 in both lists; b: rank 2 in the semantic list.
		assert.InDelta(t, 2.0/61.0, fused[0].Score, 1e-12)
		assert.InDelta(t, 1.0/62.0, fused[1].Score, 1e-12)
	})

	t.Run("source scores do not leak into fused scores", func(t *testing.T) {
		semantic := []core.Result{result("a", 1000.0)}
		lexical := []core.Result{result("b", 0.0001)}

		fused := FuseRRF(semantic, lexical, DefaultRRFK)
		require.Len(t, fused, 2)
		assert.Equal(t, fused[0].Score, fused[1].Score)
	})

	t.Run("degrades to the single non-empty source", func(t *testing.T) {
		lexical := []core.Result{result("x", 3.0), result("y", 2.0)}

		fused := FuseRRF(nil, lexical, DefaultRRFK)
		require.Len(t, fused, 2)
		assert.Equal(t, "x", fused[0].ID)
		assert.Equal(t, "y", fused[1].ID)
		assert.InDelta(t, 1.0/61.0, fused[0].Score, 1e-12)
	})

	t.Run("both sources empty", func(t *testing.T) {
		assert.Empty(t, FuseRRF(nil, nil, DefaultRRFK))
	})

	t.Run("every unique id appears exactly once", func(t *testing.T) {
		semantic := []core.Result{result("a", 0.9), result("b", 0.8), result("c", 0.7)}
		lexical := []core.Result{result("b", 5.0), result("d", 4.0)}

		fused := FuseRRF(semantic, lexical, DefaultRRFK)
		require.Len(t, fused, 4)

		seen := map[string]bool{}
		for _, res := range fused {
			assert.False(t, seen[res.ID], "id %s appeared twice", res.ID)
			seen[res.ID] = true
		}
		for _, id := range []string{"a", "b", "c", "d"} {
			assert.True(t, seen[id], "id %s missing from fusion", id)
		}
	})

	t.Run("deterministic across repeated runs", func(t *testing.T) {
		semantic := []core.Result{result("a", 0.9), result("b", 0.8), result("c", 0.7)}
		lexical := []core.Result{result("c", 3.0), result("d", 2.0), result("a", 1.0)}

		first := FuseRRF(semantic, lexical, DefaultRRFK)
		for range 10 {
			again := FuseRRF(semantic, lexical, DefaultRRFK)
			require.Len(t, again, len(first))
			for i := range first {
				assert.Equal(t, first[i].ID, again[i].ID)
				assert.Equal(t, first[i].Score, again[i].Score)
			}
		}
	})

	t.Run("equal score and sources falls back to insertion order", func(t *testing.T) {
		// Same rank in disjoint lists: identical score, one source each.
		semantic := []core.Result{result("sem", 0.9)}
		lexical := []core.Result{result("lex", 3.0)}

		fused := FuseRRF(semantic, lexical, DefaultRRFK)
		require.Len(t, fused, 2)
		assert.Equal(t, "sem", fused[0].ID)
		assert.Equal(t, "lex", fused[1].ID)
	})

	t.Run("metadata merges across sources", func(t *testing.T) {
		semantic := []core.Result{{ID: "a", Metadata: core.Metadata{"name": "Pad Thai", "price": 12.0}}}
		lexical := []core.Result{{ID: "a", Metadata: core.Metadata{"restaurant": "Thai House"}}}

		fused := FuseRRF(semantic, lexical, DefaultRRFK)
		require.Len(t, fused, 1)
		assert.Equal(t, "Pad Thai", fused[0].Metadata.String("name"))
		assert.Equal(t, "Thai House", fused[0].Metadata.String("restaurant"))
	})

	t.Run("non-positive k falls back to the default", func(t *testing.T) {
		semantic := []core.Result{result("a", 0.9)}
		fused := FuseRRF(semantic, nil, 0)
		require.Len(t, fused, 1)
		assert.InDelta(t, 1.0/61.0, fused[0].Score, 1e-12)
	})
}
