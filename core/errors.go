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

import "errors"

var (
	// ErrInvalidRequest is the base error for malformed retrieval requests.
	ErrInvalidRequest = errors.New("invalid retrieval request")

	// ErrEmptyQuery is returned when the query text is empty or whitespace.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrTopKOutOfRange is returned when the result count ceiling is outside [1, 100].
	ErrTopKOutOfRange = errors.New("top_k must be between 1 and 100")

	// ErrNegativePriceMax is returned when a price ceiling filter is negative.
	ErrNegativePriceMax = errors.New("price_max must not be negative")

	// ErrEmptyResultID is returned when a result carries no external identifier.
	ErrEmptyResultID = errors.New("result id must not be empty")
)
