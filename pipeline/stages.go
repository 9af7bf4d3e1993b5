package pipeline

import (
	"context"

	"github.com/forkful/menusearch/core"
)

// Screen judges a list of retrieved items and returns the survivors in
// their original order.
type Screen interface {
	Screen(ctx context.Context, results []core.Result) ([]core.Result, error)
}

// verifyPriceCeiling is the sanity bound on menu item prices. Anything at
// or above it is treated as a data error rather than a real price.
const verifyPriceCeiling = 1000.0

// QualityScreen drops items that lack the fields needed to present a
// useful result: a positive price and a non-empty description.
type QualityScreen struct{}

// NewQualityScreen creates the quality filter stage.
func NewQualityScreen() *QualityScreen {
	return &QualityScreen{}
}

// Screen keeps only results with a positive price and a description.
func (s *QualityScreen) Screen(_ context.Context, results []core.Result) ([]core.Result, error) {
	kept := make([]core.Result, 0, len(results))
	for _, res := range results {
		price, ok := res.Metadata.Price()
		if !ok || price <= 0 {
			continue
		}
		if res.Metadata.String("description") == "" {
			continue
		}
		kept = append(kept, res)
	}
	return kept, nil
}

// VerifyScreen rejects items whose price falls outside the plausible
// range. A missing price fails verification outright.
type VerifyScreen struct{}

// NewVerifyScreen creates the verification stage.
func NewVerifyScreen() *VerifyScreen {
	return &VerifyScreen{}
}

// Screen keeps only results whose price is present and inside (0, 1000).
func (s *VerifyScreen) Screen(_ context.Context, results []core.Result) ([]core.Result, error) {
	kept := make([]core.Result, 0, len(results))
	for _, res := range results {
		price, ok := res.Metadata.Price()
		if !ok {
			continue
		}
		if price <= 0 || price >= verifyPriceCeiling {
			continue
		}
		kept = append(kept, res)
	}
	return kept, nil
}
