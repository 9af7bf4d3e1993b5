// Copyright 2025 Forkful Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package menusearch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/ai/openai"
	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/lexical"
	"github.com/forkful/menusearch/metadata"
	"github.com/forkful/menusearch/metadata/postgres"
	"github.com/forkful/menusearch/pipeline"
	"github.com/forkful/menusearch/search"
	"github.com/forkful/menusearch/session"
	sessionbadger "github.com/forkful/menusearch/session/badger"
	"github.com/forkful/menusearch/vector"
	vectorbadger "github.com/forkful/menusearch/vector/badger"
)

// Service wires the full stack: both retrieval indexes, the metadata
// store, the AI provider, the staged pipeline, and the session cache.
type Service struct {
	vectors      vector.Store
	index        *lexical.Index
	meta         metadata.Store
	provider     ai.Provider
	orchestrator *pipeline.Orchestrator
	ranker       *pipeline.LLMRanker
	cache        session.Cache
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig    *ai.Config
	metadataDSN string
	meta        metadata.Store
	provider    ai.Provider
	cache       session.Cache
	llmRanking  bool
	logger      *slog.Logger
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithPostgres points the metadata store at a Postgres DSN. Without it the
// service runs on index payloads alone.
func WithPostgres(dsn string) ServiceOption {
	return func(o *serviceOptions) {
		o.metadataDSN = dsn
	}
}

// WithMetadataStore injects a metadata store directly, taking precedence
// over WithPostgres.
func WithMetadataStore(store metadata.Store) ServiceOption {
	return func(o *serviceOptions) {
		o.meta = store
	}
}

// WithAIProvider injects an AI provider directly, taking precedence over
// WithAIConfig.
func WithAIProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithSessionCache injects a session cache. Default is an embedded cache
// under the service's data directory.
func WithSessionCache(cache session.Cache) ServiceOption {
	return func(o *serviceOptions) {
		o.cache = cache
	}
}

// WithLLMRanking enables relevance judging by the chat model. Default is
// heuristic ranking from fused scores.
func WithLLMRanking() ServiceOption {
	return func(o *serviceOptions) {
		o.llmRanking = true
	}
}

// WithServiceLogger sets a custom logger.
// Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewService opens or creates the service's stores under dataDir and wires
// the retrieval pipeline on top of them.
func NewService(dataDir string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	// Open the vector store
	vectors, err := vectorbadger.Open(filepath.Join(dataDir, "vectors"))
	if err != nil {
		return nil, err
	}

	// Open or create the full-text index
	index, err := lexical.Open(filepath.Join(dataDir, "lexical"), lexical.WithLogger(logger))
	if errors.Is(err, lexical.ErrIndexNotFound) {
		index, err = lexical.Create(filepath.Join(dataDir, "lexical"), lexical.WithLogger(logger))
	}
	if err != nil {
		vectors.Close()
		return nil, err
	}

	// Connect the metadata store
	meta := options.meta
	if meta == nil && options.metadataDSN != "" {
		meta, err = postgres.New(options.metadataDSN, postgres.WithLogger(logger))
		if err != nil {
			index.Close()
			vectors.Close()
			return nil, err
		}
	}
	if meta == nil {
		meta = metadata.NewNullStore()
	}

	// Create the AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			meta.Close()
			index.Close()
			vectors.Close()
			return nil, err
		}
	}

	// Open the session cache
	cache := options.cache
	if cache == nil {
		cache, err = sessionbadger.Open(filepath.Join(dataDir, "sessions"), sessionbadger.WithLogger(logger))
		if err != nil {
			provider.Close()
			meta.Close()
			index.Close()
			vectors.Close()
			return nil, err
		}
	}

	svc := &Service{
		vectors:  vectors,
		index:    index,
		meta:     meta,
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
	if err := svc.wirePipeline(options.llmRanking); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

func (s *Service) wirePipeline(llmRanking bool) error {
	semantic, err := search.NewSemanticRetriever(s.provider.Embedder(), s.vectors, s.meta,
		search.WithSemanticLogger(s.logger))
	if err != nil {
		return err
	}
	lexicalRetriever := search.NewLexicalRetriever(s.index, search.WithLexicalLogger(s.logger))

	searcher, err := search.NewSearcher(semantic, lexicalRetriever, search.WithLogger(s.logger))
	if err != nil {
		return err
	}

	pipelineOpts := []pipeline.OrchestratorOption{
		pipeline.WithParser(s.provider.QueryParser()),
		pipeline.WithFallbackRetriever(lexicalRetriever),
		pipeline.WithPipelineLogger(s.logger),
	}
	if llmRanking {
		ranker, err := pipeline.NewLLMRanker(s.provider.RelevanceScorer(), pipeline.WithRankLogger(s.logger))
		if err != nil {
			return err
		}
		s.ranker = ranker
		pipelineOpts = append(pipelineOpts, pipeline.WithRanker(ranker))
	}

	orchestrator, err := pipeline.NewOrchestrator(searcher, pipelineOpts...)
	if err != nil {
		return err
	}
	s.orchestrator = orchestrator
	return nil
}

// Search runs the full retrieval pipeline for a query.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]core.Result, error) {
	return s.orchestrator.Run(ctx, query, topK)
}

// SearchWithSession runs the pipeline with result caching: a repeated
// query inside a live session returns the cached list without touching the
// indexes. Cache failures degrade to an uncached search.
func (s *Service) SearchWithSession(ctx context.Context, sessionID, query string, topK int) ([]core.Result, error) {
	cached, found, err := s.cache.Get(ctx, sessionID, query)
	if err != nil {
		s.logger.Warn("session cache read failed", "err", err)
	}
	if found {
		if len(cached) > topK {
			cached = cached[:topK]
		}
		return cached, nil
	}

	results, err := s.orchestrator.Run(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, sessionID, query, results); err != nil {
		s.logger.Warn("session cache write failed", "err", err)
	}
	return results, nil
}

// InvalidateSession drops every cached result list for a session.
func (s *Service) InvalidateSession(ctx context.Context, sessionID string) error {
	return s.cache.Invalidate(ctx, sessionID)
}

// IndexItems writes menu items into both retrieval indexes. Items without
// a precomputed embedding are embedded from their searchable text.
func (s *Service) IndexItems(ctx context.Context, items ...core.MenuItem) error {
	vectorItems := make([]vector.Item, 0, len(items))
	documents := make([]lexical.Document, 0, len(items))

	for _, item := range items {
		if item.ID == "" {
			return core.ErrEmptyResultID
		}
		meta := item.Metadata.Clone()
		if meta == nil {
			meta = core.Metadata{}
		}
		meta["id"] = item.ID
		meta.Normalize()

		embedding := item.Vector
		if embedding == nil {
			var err error
			embedding, err = s.provider.Embedder().EmbedText(ctx, meta.Text())
			if err != nil {
				return err
			}
		}

		vectorItems = append(vectorItems, vector.Item{ID: item.ID, Vector: embedding, Payload: meta})
		documents = append(documents, lexical.Document{ID: item.ID, Fields: meta})
	}

	if err := s.vectors.Add(ctx, vectorItems...); err != nil {
		return err
	}
	return s.index.Index(documents...)
}

// Close shuts down every component of the service.
func (s *Service) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil {
			s.logger.Error("error closing service component", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if s.ranker != nil {
		keep(s.ranker.Close())
	}
	keep(s.provider.Close())
	keep(s.cache.Close())
	keep(s.meta.Close())
	keep(s.index.Close())
	keep(s.vectors.Close())
	return firstErr
}
