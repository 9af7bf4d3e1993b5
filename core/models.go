package core

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a 64-bit identifier derived from external string identifiers.
// It is used as a compact storage key; the external string id remains the
// join key across the vector index, lexical index, and metadata store.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Metadata is the open field set carried by a menu item: name, description,
// price, category, restaurant fields, location fields, ratings, and the
// free-text blob used for lexical matching.
type Metadata map[string]any

// String returns the value for key as a string, or "" if absent or not a string.
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Float returns the value for key coerced to a float64.
// It accepts the numeric types that JSON decoding, bleve stored fields, and
// database drivers produce, plus numeric strings.
func (m Metadata) Float(key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Int returns the value for key coerced to an int.
func (m Metadata) Int(key string) (int, bool) {
	f, ok := m.Float(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Price returns the item price, if present.
func (m Metadata) Price() (float64, bool) {
	return m.Float("price")
}

// Text returns the free-text blob used for lexical matching.
// When the upstream source omitted it, the blob is derived from
// name and description.
func (m Metadata) Text() string {
	if t := m.String("text"); t != "" {
		return t
	}
	return strings.TrimSpace(strings.Join(
		nonEmpty(m.String("name"), m.String("description")), " "))
}

// Clone returns a copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies fields from other into m, overwriting on conflict.
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// Normalize canonicalizes the metadata in place: numeric fields are coerced
// to their canonical Go types, cuisine is lower-cased, and the text blob is
// made derivable.
func (m Metadata) Normalize() {
	for _, key := range []string{"price", "rating", "latitude", "longitude", "delivery_fee", "delivery_minimum", "on_time_rate"} {
		if _, present := m[key]; present {
			if f, ok := m.Float(key); ok {
				m[key] = f
			} else {
				delete(m, key)
			}
		}
	}
	if _, present := m["review_count"]; present {
		if n, ok := m.Int("review_count"); ok {
			m["review_count"] = n
		} else {
			delete(m, "review_count")
		}
	}
	if cuisine := m.String("cuisine"); cuisine != "" {
		m["cuisine"] = strings.ToLower(cuisine)
	}
	if m.String("text") == "" {
		if t := m.Text(); t != "" {
			m["text"] = t
		}
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// MenuItem is one ingestible menu item: its external identity, the
// metadata both retrieval sources index, and optionally a precomputed
// embedding. A nil Vector means the indexer embeds the item's text itself.
type MenuItem struct {
	ID       string    `json:"id"`
	Metadata Metadata  `json:"metadata"`
	Vector   []float32 `json:"vector,omitempty"`
}

// Result is the unit of retrieval and ranking. Score carries the
// source-specific relevance score until fusion assigns the RRF score;
// Relevance is populated by the ranking stage on a 0-10 scale.
type Result struct {
	ID        string   `json:"id"`
	Score     float64  `json:"score"`
	Relevance float64  `json:"relevance_score"`
	Sources   int      `json:"-"`
	Metadata  Metadata `json:"metadata"`
}

// Clone returns a copy of the result with its own metadata map, so that a
// pipeline stage can annotate it without mutating its input.
func (r Result) Clone() Result {
	out := r
	out.Metadata = r.Metadata.Clone()
	return out
}

// ParsedQuery is the structured form of a free-text query produced by the
// normalization stage.
type ParsedQuery struct {
	Keywords string   `json:"keywords"`
	PriceMax *float64 `json:"price_max"`
	Dietary  string   `json:"dietary"`
	Location string   `json:"location"`
}

// Request builds a retrieval request for the parsed query.
func (p ParsedQuery) Request(topK int) RetrievalRequest {
	return RetrievalRequest{
		Query:    p.Keywords,
		TopK:     topK,
		PriceMax: p.PriceMax,
		Dietary:  p.Dietary,
		Location: p.Location,
	}
}

// RetrievalRequest describes a single query against the retrieval core.
// It is constructed per incoming query, read-only, and discarded after the
// pipeline completes.
type RetrievalRequest struct {
	Query    string
	TopK     int
	PriceMax *float64
	Dietary  string
	Location string
}
