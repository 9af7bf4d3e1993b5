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


package search

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorStoreRequired is returned when a vector store is not provided.
	ErrVectorStoreRequired = errors.New("vector store required")

	// ErrSemanticRetrieverRequired is returned when a semantic retriever is not provided.
	ErrSemanticRetrieverRequired = errors.New("semantic retriever required")

	// ErrLexicalRetrieverRequired is returned when a lexical retriever is not provided.
	ErrLexicalRetrieverRequired = errors.New("lexical retriever required")

	// ErrAllSourcesFailed is returned when both retrieval sources errored
	// simultaneously and no fused list could be produced.
	ErrAllSourcesFailed = errors.New("all retrieval sources failed")
)
