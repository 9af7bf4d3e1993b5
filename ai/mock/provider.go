// Copyright 2025 Forkful Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/forkful/menusearch/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, parser, and scorer instances.
type MockProvider struct {
	embedder *MockEmbedder
	parser   *MockQueryParser
	scorer   *MockRelevanceScorer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockParser()/GetMockScorer() to access concrete
// types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		parser:   NewMockQueryParser(),
		scorer:   NewMockRelevanceScorer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, parser *MockQueryParser, scorer *MockRelevanceScorer) ai.Provider {
	return &MockProvider{
		embedder: embedder,
		parser:   parser,
		scorer:   scorer,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// QueryParser returns the mock query parser.
func (p *MockProvider) QueryParser() ai.QueryParser {
	return p.parser
}

// RelevanceScorer returns the mock relevance scorer.
func (p *MockProvider) RelevanceScorer() ai.RelevanceScorer {
	return p.scorer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockParser returns the concrete mock parser for test assertions.
func (p *MockProvider) GetMockParser() *MockQueryParser {
	return p.parser
}

// GetMockScorer returns the concrete mock scorer for test assertions.
func (p *MockProvider) GetMockScorer() *MockRelevanceScorer {
	return p.scorer
}
