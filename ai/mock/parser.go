package mock

import (
	"context"

	"github.com/forkful/menusearch/core"
)

// MockQueryParser is a test double for ai.QueryParser.
// It allows custom behavior injection via function fields.
type MockQueryParser struct {
	// ParseQueryFunc is called by ParseQuery if set.
	// If nil, the entire query is returned as keywords with no filters.
	ParseQueryFunc func(ctx context.Context, query string) (core.ParsedQuery, error)

	callCount int
}

// NewMockQueryParser creates a mock parser with default pass-through behavior.
func NewMockQueryParser() *MockQueryParser {
	return &MockQueryParser{}
}

// ParseQuery returns the parsed form of the query.
func (m *MockQueryParser) ParseQuery(ctx context.Context, query string) (core.ParsedQuery, error) {
	m.callCount++

	if m.ParseQueryFunc != nil {
		return m.ParseQueryFunc(ctx, query)
	}

	return core.ParsedQuery{Keywords: query}, nil
}

// CallCount returns the number of times ParseQuery was called.
func (m *MockQueryParser) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockQueryParser) Reset() {
	m.callCount = 0
	m.ParseQueryFunc = nil
}
