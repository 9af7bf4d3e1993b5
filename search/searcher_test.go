package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/forkful/menusearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRetriever returns canned results or a canned error, recording the
// limit it was asked for.
type stubRetriever struct {
	mu      sync.Mutex
	results []core.Result
	err     error
	limit   int
	calls   int
}

func (s *stubRetriever) Retrieve(_ context.Context, _ string, limit int) ([]core.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.limit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

// recordingMonitor captures which hooks fired.
type recordingMonitor struct {
	mu             sync.Mutex
	requestID      string
	failedSources  []string
	fusedCount     int
	filteredCount  int
	finished       bool
	semanticCalled bool
	lexicalCalled  bool
}

func (m *recordingMonitor) Start(requestID string, _ core.RetrievalRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestID = requestID
}

func (m *recordingMonitor) AfterSemanticRetrieval(_ []core.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.semanticCalled = true
}

func (m *recordingMonitor) AfterLexicalRetrieval(_ []core.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lexicalCalled = true
}

func (m *recordingMonitor) SourceFailed(source string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedSources = append(m.failedSources, source)
}

func (m *recordingMonitor) AfterFusion(results []core.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fusedCount = len(results)
}

func (m *recordingMonitor) AfterFilter(results []core.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filteredCount = len(results)
}

func (m *recordingMonitor) Finish(_ []core.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = true
}

func TestNewSearcher(t *testing.T) {
	semantic := &stubRetriever{}
	lexical := &stubRetriever{}

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(semantic, lexical)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil semantic retriever", func(t *testing.T) {
		_, err := NewSearcher(nil, lexical)
		assert.Equal(t, ErrSemanticRetrieverRequired, err)
	})

	t.Run("nil lexical retriever", func(t *testing.T) {
		_, err := NewSearcher(semantic, nil)
		assert.Equal(t, ErrLexicalRetrieverRequired, err)
	})
}

func TestSearch_InvalidRequests(t *testing.T) {
	searcher, err := NewSearcher(&stubRetriever{}, &stubRetriever{})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("empty query", func(t *testing.T) {
		_, err := searcher.Search(ctx, core.RetrievalRequest{Query: "", TopK: 10})
		assert.ErrorIs(t, err, core.ErrEmptyQuery)
	})

	t.Run("top_k out of range", func(t *testing.T) {
		_, err := searcher.Search(ctx, core.RetrievalRequest{Query: "tacos", TopK: 0})
		assert.ErrorIs(t, err, core.ErrTopKOutOfRange)

		_, err = searcher.Search(ctx, core.RetrievalRequest{Query: "tacos", TopK: 101})
		assert.ErrorIs(t, err, core.ErrTopKOutOfRange)
	})

	t.Run("negative price ceiling", func(t *testing.T) {
		ceiling := -5.0
		_, err := searcher.Search(ctx, core.RetrievalRequest{Query: "tacos", TopK: 10, PriceMax: &ceiling})
		assert.ErrorIs(t, err, core.ErrNegativePriceMax)
	})
}

func TestSearch_BothSourcesHealthy(t *testing.T) {
	semantic := &stubRetriever{results: []core.Result{result("a", 0.9), result("b", 0.8)}}
	lexical := &stubRetriever{results: []core.Result{result("a", 3.0), result("c", 2.0)}}

	searcher, err := NewSearcher(semantic, lexical)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), core.RetrievalRequest{Query: "thai noodles", TopK: 10})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].ID)

	// Each source is asked for a pool larger than top_k.
	assert.Equal(t, 20, semantic.limit)
	assert.Equal(t, 20, lexical.limit)
}

func TestSearch_OneSourceFails(t *testing.T) {
	t.Run("lexical failure degrades to semantic only", func(t *testing.T) {
		semantic := &stubRetriever{results: []core.Result{result("a", 0.9), result("b", 0.8)}}
		lexical := &stubRetriever{err: errors.New("index unavailable")}

		searcher, err := NewSearcher(semantic, lexical)
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		results, err := searcher.SearchWithMonitor(context.Background(),
			core.RetrievalRequest{Query: "thai noodles", TopK: 10}, monitor)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a", results[0].ID)
		assert.Equal(t, "b", results[1].ID)

		assert.Equal(t, []string{SourceLexical}, monitor.failedSources)
		assert.True(t, monitor.semanticCalled)
		assert.False(t, monitor.lexicalCalled)
		assert.True(t, monitor.finished)
		assert.NotEmpty(t, monitor.requestID)
	})

	t.Run("semantic failure degrades to lexical only", func(t *testing.T) {
		semantic := &stubRetriever{err: errors.New("embedding service down")}
		lexical := &stubRetriever{results: []core.Result{result("x", 3.0)}}

		searcher, err := NewSearcher(semantic, lexical)
		require.NoError(t, err)

		results, err := searcher.Search(context.Background(), core.RetrievalRequest{Query: "thai noodles", TopK: 10})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "x", results[0].ID)
	})
}

func TestSearch_BothSourcesFail(t *testing.T) {
	semantic := &stubRetriever{err: errors.New("embedding service down")}
	lexical := &stubRetriever{err: errors.New("index unavailable")}

	searcher, err := NewSearcher(semantic, lexical)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	_, err = searcher.SearchWithMonitor(context.Background(),
		core.RetrievalRequest{Query: "thai noodles", TopK: 10}, monitor)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.Len(t, monitor.failedSources, 2)
}

func TestSearch_TruncatesToTopK(t *testing.T) {
	var semanticResults []core.Result
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		semanticResults = append(semanticResults, result(id, 1.0))
	}
	semantic := &stubRetriever{results: semanticResults}
	lexical := &stubRetriever{}

	searcher, err := NewSearcher(semantic, lexical)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), core.RetrievalRequest{Query: "noodles", TopK: 3})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_AppliesFilters(t *testing.T) {
	semantic := &stubRetriever{results: []core.Result{
		{ID: "cheap", Metadata: core.Metadata{"price": 8.0, "description": "noodle soup"}},
		{ID: "pricey", Metadata: core.Metadata{"price": 22.0, "description": "noodle soup"}},
	}}
	lexical := &stubRetriever{}

	searcher, err := NewSearcher(semantic, lexical)
	require.NoError(t, err)

	ceiling := 10.0
	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(),
		core.RetrievalRequest{Query: "noodles", TopK: 10, PriceMax: &ceiling}, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "cheap", results[0].ID)
	assert.Equal(t, 2, monitor.fusedCount)
	assert.Equal(t, 1, monitor.filteredCount)
}

func TestSearch_CustomFetchFactor(t *testing.T) {
	semantic := &stubRetriever{}
	lexical := &stubRetriever{}

	searcher, err := NewSearcher(semantic, lexical, WithFetchFactor(5))
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), core.RetrievalRequest{Query: "noodles", TopK: 4})
	require.NoError(t, err)
	assert.Equal(t, 20, semantic.limit)
	assert.Equal(t, 20, lexical.limit)
}
