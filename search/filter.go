package search

import (
	"strings"

	"github.com/forkful/menusearch/core"
)

// Filters are the caller-supplied constraints applied to a fused result
// list. They commute and are AND-combined.
type Filters struct {
	// PriceMax drops items priced strictly above the ceiling. Items with
	// no price are treated as free and survive.
	PriceMax *float64

	// Dietary drops items whose term is absent (case-insensitive substring)
	// from both the description and the text blob.
	Dietary string

	// Location drops items whose term is absent (case-insensitive
	// substring) from the concatenation of address, city, and state.
	Location string
}

// FiltersFromRequest extracts the filter constraints of a retrieval request.
func FiltersFromRequest(req core.RetrievalRequest) Filters {
	return Filters{
		PriceMax: req.PriceMax,
		Dietary:  req.Dietary,
		Location: req.Location,
	}
}

// Empty reports whether no constraint is set.
func (f Filters) Empty() bool {
	return f.PriceMax == nil && f.Dietary == "" && f.Location == ""
}

// Apply returns the items that satisfy every set constraint, preserving
// order. Filtering happens after fusion so a high-fused-score item is never
// discarded before its true rank is known.
func (f Filters) Apply(results []core.Result) []core.Result {
	if f.Empty() {
		return results
	}

	dietaryTerm := strings.ToLower(f.Dietary)
	locationTerm := strings.ToLower(f.Location)

	filtered := make([]core.Result, 0, len(results))
	for _, res := range results {
		meta := res.Metadata

		if f.PriceMax != nil {
			price, _ := meta.Price()
			if price > *f.PriceMax {
				continue
			}
		}

		if dietaryTerm != "" {
			description := strings.ToLower(meta.String("description"))
			textBlob := strings.ToLower(meta.Text())
			if !strings.Contains(description, dietaryTerm) && !strings.Contains(textBlob, dietaryTerm) {
				continue
			}
		}

		if locationTerm != "" {
			locationBlob := strings.ToLower(strings.Join([]string{
				meta.String("address"),
				meta.String("city"),
				meta.String("state"),
			}, " "))
			if !strings.Contains(locationBlob, locationTerm) {
				continue
			}
		}

		filtered = append(filtered, res)
	}

	return filtered
}
