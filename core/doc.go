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


// Package core defines the domain model shared by the retrieval and ranking
// pipeline: menu-item results, their open metadata field set, parsed queries,
// and retrieval requests, along with the validation rules for each.
//
// Records are created fresh per query and never persisted by this module;
// the vector index, lexical index, and metadata store are external artifacts
// that the module only reads.
package core
