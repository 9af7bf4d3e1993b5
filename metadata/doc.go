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


// Package metadata defines the contract of the relational metadata store:
// authoritative menu-item and restaurant fields fetched by external id.
// Store fields take precedence over index payloads during enrichment.
//
// The postgres subpackage provides the production implementation; the mock
// subpackage provides an in-memory implementation for tests.
package metadata
