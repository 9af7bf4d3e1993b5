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


// Package ai defines the interfaces for the external AI services the search
// pipeline consumes: text embedding, query normalization, and per-result
// relevance judgment.
//
// Concrete implementations live in subpackages:
//   - ai/openai: OpenAI-compatible API implementations
//   - ai/mock: deterministic test doubles
//
// All of these services are optional collaborators with fail-soft callers:
// the pipeline degrades to heuristic behavior when a service is unreachable.
package ai
