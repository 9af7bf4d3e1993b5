package search

import (
	"testing"

	"github.com/forkful/menusearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceResult(id string, price float64) core.Result {
	return core.Result{ID: id, Metadata: core.Metadata{"id": id, "price": price}}
}

func TestFiltersApply(t *testing.T) {
	t.Run("price ceiling is inclusive", func(t *testing.T) {
		ceiling := 10.0
		results := []core.Result{
			priceResult("under", 9.99),
			priceResult("at", 10.00),
			priceResult("over", 10.01),
		}

		filtered := Filters{PriceMax: &ceiling}.Apply(results)
		require.Len(t, filtered, 2)
		assert.Equal(t, "under", filtered[0].ID)
		assert.Equal(t, "at", filtered[1].ID)
	})

	t.Run("missing price survives the ceiling", func(t *testing.T) {
		ceiling := 5.0
		results := []core.Result{
			{ID: "unknown", Metadata: core.Metadata{"name": "Mystery Special"}},
			priceResult("pricey", 20.0),
		}

		filtered := Filters{PriceMax: &ceiling}.Apply(results)
		require.Len(t, filtered, 1)
		assert.Equal(t, "unknown", filtered[0].ID)
	})

	t.Run("dietary matches description case-insensitively", func(t *testing.T) {
		results := []core.Result{
			{ID: "a", Metadata: core.Metadata{"description": "Vegan coconut curry"}},
			{ID: "b", Metadata: core.Metadata{"description": "pork belly bao"}},
			{ID: "c", Metadata: core.Metadata{"text": "vegan pad thai"}},
		}

		filtered := Filters{Dietary: "vegan"}.Apply(results)
		require.Len(t, filtered, 2)
		assert.Equal(t, "a", filtered[0].ID)
		assert.Equal(t, "c", filtered[1].ID)
	})

	t.Run("location matches address city and state", func(t *testing.T) {
		results := []core.Result{
			{ID: "a", Metadata: core.Metadata{"address": "12 Mission St", "city": "San Francisco", "state": "CA"}},
			{ID: "b", Metadata: core.Metadata{"city": "Oakland", "state": "CA"}},
			{ID: "c", Metadata: core.Metadata{}},
		}

		filtered := Filters{Location: "san francisco"}.Apply(results)
		require.Len(t, filtered, 1)
		assert.Equal(t, "a", filtered[0].ID)
	})

	t.Run("constraints AND together", func(t *testing.T) {
		ceiling := 15.0
		results := []core.Result{
			{ID: "both", Metadata: core.Metadata{"price": 12.0, "description": "vegan bowl", "city": "Portland"}},
			{ID: "wrong-city", Metadata: core.Metadata{"price": 12.0, "description": "vegan bowl", "city": "Seattle"}},
			{ID: "too-pricey", Metadata: core.Metadata{"price": 18.0, "description": "vegan bowl", "city": "Portland"}},
			{ID: "not-vegan", Metadata: core.Metadata{"price": 12.0, "description": "beef bowl", "city": "Portland"}},
		}

		filters := Filters{PriceMax: &ceiling, Dietary: "vegan", Location: "portland"}
		filtered := filters.Apply(results)
		require.Len(t, filtered, 1)
		assert.Equal(t, "both", filtered[0].ID)
	})

	t.Run("order is preserved", func(t *testing.T) {
		ceiling := 100.0
		results := []core.Result{priceResult("c", 3), priceResult("a", 1), priceResult("b", 2)}

		filtered := Filters{PriceMax: &ceiling}.Apply(results)
		require.Len(t, filtered, 3)
		assert.Equal(t, "c", filtered[0].ID)
		assert.Equal(t, "a", filtered[1].ID)
		assert.Equal(t, "b", filtered[2].ID)
	})

	t.Run("empty filters pass everything through", func(t *testing.T) {
		results := []core.Result{priceResult("a", 999)}
		assert.Equal(t, results, Filters{}.Apply(results))
		assert.True(t, Filters{}.Empty())
	})
}

func TestFiltersFromRequest(t *testing.T) {
	ceiling := 20.0
	req := core.RetrievalRequest{
		Query:    "noodles",
		TopK:     10,
		PriceMax: &ceiling,
		Dietary:  "vegetarian",
		Location: "berkeley",
	}

	filters := FiltersFromRequest(req)
	require.NotNil(t, filters.PriceMax)
	assert.Equal(t, 20.0, *filters.PriceMax)
	assert.Equal(t, "vegetarian", filters.Dietary)
	assert.Equal(t, "berkeley", filters.Location)
	assert.False(t, filters.Empty())
}
