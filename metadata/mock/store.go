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


// Package mock provides an in-memory metadata.Store for tests.
package mock

import (
	"context"
	"sync"

	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/metadata"
)

// MockStore is a test double for metadata.Store backed by a map.
// It allows custom behavior injection via function fields.
type MockStore struct {
	// FetchByIDsFunc is called by FetchByIDs if set.
	// If nil, rows are served from the in-memory map.
	FetchByIDsFunc func(ctx context.Context, ids []string) (map[string]core.Metadata, error)

	mu   sync.RWMutex
	rows map[string]core.Metadata
}

var _ metadata.Store = (*MockStore)(nil)

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{rows: make(map[string]core.Metadata)}
}

// Put inserts or replaces a row.
func (m *MockStore) Put(id string, meta core.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[id] = meta
}

// FetchByIDs retrieves rows for the given external ids.
func (m *MockStore) FetchByIDs(ctx context.Context, ids []string) (map[string]core.Metadata, error) {
	if m.FetchByIDsFunc != nil {
		return m.FetchByIDsFunc(ctx, ids)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]core.Metadata, len(ids))
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			out[id] = row.Clone()
		}
	}
	return out, nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}
