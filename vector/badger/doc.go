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


// Package badger implements vector.Store on BadgerDB.
//
// Items are stored as JSON documents keyed by a content hash of their
// external id. Search is a linear cosine-similarity scan over the
// collection; at restaurant-menu scale this is far below the latency of the
// embedding call that precedes it.
package badger
