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

// Package pipeline runs the staged retrieval flow: a query is normalized
// into a structured request, retrieved, screened for quality, verified,
// and finally ranked by relevance.
//
// Every stage after request validation is fail-soft: a stage that errors
// passes its input through unchanged, and a total retrieval failure falls
// back to the lexical source alone before degrading to an empty list. The
// only errors the pipeline surfaces to the caller are its own input
// validation errors.
package pipeline
