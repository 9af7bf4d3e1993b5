package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/forkful/menusearch/core"
	"github.com/forkful/menusearch/vector"
)

// Store is a BadgerDB-backed vector.Store. Items are stored as JSON
// documents and searched with a full cosine-similarity scan, which is
// adequate for menu-sized collections.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ vector.Store = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// document is the stored form of a vector.Item.
type document struct {
	ID      string        `json:"id"`
	Vector  []float32     `json:"vector"`
	Payload core.Metadata `json:"payload,omitempty"`
}

// Open opens a vector store at the specified path.
// Creates the directory if it doesn't exist.
func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0755); err != nil {
				return nil, err
			}
			info, err = os.Stat(path)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	return open(badger.DefaultOptions(path))
}

// OpenInMemory opens an ephemeral in-memory vector store, used in tests.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	logger := slog.Default().With("component", "vector-store")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts or replaces items in the index.
func (s *Store) Add(ctx context.Context, items ...vector.Item) error {
	for _, item := range items {
		if item.ID == "" {
			return vector.ErrEmptyID
		}
		if len(item.Vector) == 0 {
			return fmt.Errorf("%w: item %q", vector.ErrEmptyVector, item.ID)
		}
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(document{
			ID:      item.ID,
			Vector:  item.Vector,
			Payload: item.Payload,
		})
		if err != nil {
			return err
		}
		if err := batch.Set(makeItemKey(item.ID), data); err != nil {
			return err
		}
	}

	return batch.Flush()
}

// Search returns up to limit items nearest to the query vector, ordered by
// cosine similarity descending. Result order for equal similarities follows
// the external id, so repeated searches are deterministic.
func (s *Store) Search(ctx context.Context, query []float32, limit int) ([]vector.Hit, error) {
	if len(query) == 0 {
		return nil, vector.ErrEmptyVector
	}

	var hits []vector.Hit

	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc document
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				return err
			}
			if len(doc.Vector) == 0 {
				continue
			}

			hits = append(hits, vector.Hit{
				ID:      doc.ID,
				Score:   cosineSimilarity(query, doc.Vector),
				Payload: doc.Payload,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(hits, func(a, b vector.Hit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	return hits, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Vectors of mismatched length are compared over the common prefix.
func cosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
