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


package core

import (
	"fmt"
	"strings"
)

const (
	// MinTopK is the smallest valid result count ceiling.
	MinTopK = 1
	// MaxTopK is the largest valid result count ceiling.
	MaxTopK = 100
)

// ValidateRequest validates a RetrievalRequest according to the caller
// contract. Malformed requests are rejected synchronously, before any
// backing service is touched.
//
// Validation rules:
//   - Query must not be empty or whitespace-only
//   - TopK must be within [MinTopK, MaxTopK]
//   - PriceMax, when present, must not be negative
func ValidateRequest(req RetrievalRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrEmptyQuery)
	}

	if req.TopK < MinTopK || req.TopK > MaxTopK {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidRequest, ErrTopKOutOfRange, req.TopK)
	}

	if req.PriceMax != nil && *req.PriceMax < 0 {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidRequest, ErrNegativePriceMax, *req.PriceMax)
	}

	return nil
}

// ValidateResult validates a Result according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//
// NOT validated (populated by pipeline stages):
//   - Score (0 is valid before fusion)
//   - Relevance (0 is valid before ranking)
func ValidateResult(res Result) error {
	if res.ID == "" {
		return ErrEmptyResultID
	}
	return nil
}
