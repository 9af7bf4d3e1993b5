package search

import (
	"context"
	"errors"
	"testing"

	"github.com/forkful/menusearch/ai/mock"
	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/lexical"
	metamock "github.com/forkful/menusearch/metadata/mock"
	"github.com/forkful/menusearch/vector"
	vectorbadger "github.com/forkful/menusearch/vector/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorItem(id string, vec []float32, payload core.Metadata) vector.Item {
	return vector.Item{ID: id, Vector: vec, Payload: payload}
}

func TestSemanticRetriever(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an embedder and a vector store", func(t *testing.T) {
		store, err := vectorbadger.OpenInMemory()
		require.NoError(t, err)
		defer store.Close()

		_, err = NewSemanticRetriever(nil, store, nil)
		assert.Equal(t, ErrEmbedderRequired, err)

		_, err = NewSemanticRetriever(mock.NewMockEmbedder(), nil, nil)
		assert.Equal(t, ErrVectorStoreRequired, err)
	})

	t.Run("store fields win over payload fields", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		store, err := vectorbadger.OpenInMemory()
		require.NoError(t, err)
		defer store.Close()

		vec, err := embedder.EmbedText(ctx, "pad thai with shrimp")
		require.NoError(t, err)
		require.NoError(t, store.Add(ctx, vectorItem("item-1", vec, core.Metadata{
			"name": "Stale Name", "price": 9.99,
		})))

		meta := metamock.NewMockStore()
		meta.Put("item-1", core.Metadata{"name": "Pad Thai", "price": 12.5, "restaurant": "Thai House"})

		retriever, err := NewSemanticRetriever(embedder, store, meta)
		require.NoError(t, err)

		results, err := retriever.Retrieve(ctx, "pad thai with shrimp", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Pad Thai", results[0].Metadata.String("name"))
		assert.Equal(t, "Thai House", results[0].Metadata.String("restaurant"))

		price, ok := results[0].Metadata.Price()
		require.True(t, ok)
		assert.Equal(t, 12.5, price)
	})

	t.Run("metadata failure degrades to payload fields", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		store, err := vectorbadger.OpenInMemory()
		require.NoError(t, err)
		defer store.Close()

		vec, err := embedder.EmbedText(ctx, "pad thai with shrimp")
		require.NoError(t, err)
		require.NoError(t, store.Add(ctx, vectorItem("item-1", vec, core.Metadata{
			"name": "Pad Thai", "price": 12.5,
		})))

		meta := metamock.NewMockStore()
		meta.FetchByIDsFunc = func(_ context.Context, _ []string) (map[string]core.Metadata, error) {
			return nil, errors.New("database unreachable")
		}

		retriever, err := NewSemanticRetriever(embedder, store, meta)
		require.NoError(t, err)

		results, err := retriever.Retrieve(ctx, "pad thai with shrimp", 10)
		require.NoError(t, err, "metadata failure must not fail the source")
		require.Len(t, results, 1)
		assert.Equal(t, "Pad Thai", results[0].Metadata.String("name"))
	})

	t.Run("embedding failure surfaces as an error", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		store, err := vectorbadger.OpenInMemory()
		require.NoError(t, err)
		defer store.Close()

		retriever, err := NewSemanticRetriever(embedder, store, nil)
		require.NoError(t, err)

		_, err = retriever.Retrieve(ctx, "pad thai", 10)
		assert.Error(t, err)
	})

	t.Run("nil metadata store serves payloads alone", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		store, err := vectorbadger.OpenInMemory()
		require.NoError(t, err)
		defer store.Close()

		vec, err := embedder.EmbedText(ctx, "green curry")
		require.NoError(t, err)
		require.NoError(t, store.Add(ctx, vectorItem("item-1", vec, core.Metadata{"name": "Green Curry"})))

		retriever, err := NewSemanticRetriever(embedder, store, nil)
		require.NoError(t, err)

		results, err := retriever.Retrieve(ctx, "green curry", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Green Curry", results[0].Metadata.String("name"))
	})
}

func TestLexicalRetriever(t *testing.T) {
	ctx := context.Background()

	t.Run("nil index yields no results without error", func(t *testing.T) {
		retriever := NewLexicalRetriever(nil)
		results, err := retriever.Retrieve(ctx, "pad thai", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("hits come back with normalized stored fields", func(t *testing.T) {
		ix, err := lexical.OpenInMemory()
		require.NoError(t, err)
		defer ix.Close()

		require.NoError(t, ix.Index(lexical.Document{
			ID: "item-1",
			Fields: core.Metadata{
				"id": "item-1", "text": "pad thai with shrimp",
				"name": "Pad Thai", "price": 12.5, "cuisine": "Thai",
			},
		}))

		retriever := NewLexicalRetriever(ix)
		results, err := retriever.Retrieve(ctx, "pad thai", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "item-1", results[0].ID)
		assert.Equal(t, "thai", results[0].Metadata.String("cuisine"))
		assert.Greater(t, results[0].Score, 0.0)
	})
}
