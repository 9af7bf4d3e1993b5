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

// Package badger provides an embedded session cache on BadgerDB, with
// entry expiry handled by the store's native TTL support.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/session"
)

// Cache is a BadgerDB-backed session cache.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets how long cached entries stay valid.
// Default is session.DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Open opens or creates a session cache at the given path.
func Open(path string, opts ...Option) (*Cache, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating session cache directory: %w", err)
	}
	return open(badger.DefaultOptions(path), opts...)
}

// OpenInMemory creates a session cache that lives only in memory.
func OpenInMemory(opts ...Option) (*Cache, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts...)
}

func open(badgerOpts badger.Options, opts ...Option) (*Cache, error) {
	c := &Cache{
		ttl:    session.DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	badgerOpts = badgerOpts.
		WithLogger(badgerLoggerAdapter{logger: c.logger.With("component", "session-badger")}).
		WithCompression(options.None)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening session cache: %w", err)
	}
	c.db = db
	return c, nil
}

// Put stores the results for a query inside a session, with the cache TTL.
func (c *Cache) Put(ctx context.Context, sessionID, query string, results []core.Result) error {
	if sessionID == "" {
		return session.ErrEmptySessionID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encoding cached results: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(makeEntryKey(sessionID, query), payload).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Get returns the cached results for a query inside a session. An expired
// or missing entry reports found=false without error.
func (c *Cache) Get(ctx context.Context, sessionID, query string) ([]core.Result, bool, error) {
	if sessionID == "" {
		return nil, false, session.ErrEmptySessionID
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var results []core.Result
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeEntryKey(sessionID, query))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &results)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading session cache: %w", err)
	}
	return results, true, nil
}

// Invalidate removes every cached entry for a session.
func (c *Cache) Invalidate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return session.ErrEmptySessionID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := makeSessionPrefix(sessionID)
	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// badgerLoggerAdapter bridges badger's logger interface onto slog.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

func (a badgerLoggerAdapter) Errorf(format string, args ...any) {
	a.logger.Error(fmt.Sprintf(format, args...))
}

func (a badgerLoggerAdapter) Warningf(format string, args ...any) {
	a.logger.Warn(fmt.Sprintf(format, args...))
}

func (a badgerLoggerAdapter) Infof(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}

func (a badgerLoggerAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...))
}
