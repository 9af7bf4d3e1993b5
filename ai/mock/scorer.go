package mock

import (
	"context"
	"sync"

	"github.com/forkful/menusearch/core"
)

// MockRelevanceScorer is a test double for ai.RelevanceScorer.
// It allows custom behavior injection via function fields.
type MockRelevanceScorer struct {
	// ScoreRelevanceFunc is called by ScoreRelevance if set.
	// If nil, uses default deterministic behavior: scores descend from 10
	// in input order, so the input order is preserved after ranking.
	ScoreRelevanceFunc func(ctx context.Context, query string, results []core.Result) ([]float64, error)

	mu        sync.Mutex
	callCount int
}

// NewMockRelevanceScorer creates a mock scorer with default deterministic behavior.
func NewMockRelevanceScorer() *MockRelevanceScorer {
	return &MockRelevanceScorer{}
}

// ScoreRelevance returns one score per result, in input order.
func (m *MockRelevanceScorer) ScoreRelevance(ctx context.Context, query string, results []core.Result) ([]float64, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ScoreRelevanceFunc != nil {
		return m.ScoreRelevanceFunc(ctx, query, results)
	}

	scores := make([]float64, len(results))
	for i := range results {
		score := 10.0 - float64(i)*0.5
		if score < 0 {
			score = 0
		}
		scores[i] = score
	}
	return scores, nil
}

// CallCount returns the number of times ScoreRelevance was called.
func (m *MockRelevanceScorer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockRelevanceScorer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ScoreRelevanceFunc = nil
}
