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


// Package openai provides ai service implementations backed by
// OpenAI-compatible APIs (OpenAI, Ollama, vLLM, and similar).
//
// The parser and scorer request JSON-mode completions at temperature 0 and
// tolerate the usual model misbehavior: wrapped code fences, missing fields,
// and out-of-range scores are repaired or dropped rather than failing the
// request.
package openai
