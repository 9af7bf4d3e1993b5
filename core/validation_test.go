package core

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     RetrievalRequest
		wantErr error
	}{
		{
			name:    "valid request",
			req:     RetrievalRequest{Query: "spicy noodles", TopK: 10},
			wantErr: nil,
		},
		{
			name:    "valid request with filters",
			req:     RetrievalRequest{Query: "vegan bowls", TopK: 5, PriceMax: floatPtr(15), Dietary: "vegan", Location: "downtown"},
			wantErr: nil,
		},
		{
			name:    "top_k at lower bound",
			req:     RetrievalRequest{Query: "tacos", TopK: MinTopK},
			wantErr: nil,
		},
		{
			name:    "top_k at upper bound",
			req:     RetrievalRequest{Query: "tacos", TopK: MaxTopK},
			wantErr: nil,
		},
		{
			name:    "empty query",
			req:     RetrievalRequest{Query: "", TopK: 10},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "whitespace-only query",
			req:     RetrievalRequest{Query: "   \t", TopK: 10},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "top_k zero",
			req:     RetrievalRequest{Query: "tacos", TopK: 0},
			wantErr: ErrTopKOutOfRange,
		},
		{
			name:    "top_k negative",
			req:     RetrievalRequest{Query: "tacos", TopK: -3},
			wantErr: ErrTopKOutOfRange,
		},
		{
			name:    "top_k above maximum",
			req:     RetrievalRequest{Query: "tacos", TopK: MaxTopK + 1},
			wantErr: ErrTopKOutOfRange,
		},
		{
			name:    "negative price ceiling",
			req:     RetrievalRequest{Query: "tacos", TopK: 10, PriceMax: floatPtr(-1)},
			wantErr: ErrNegativePriceMax,
		},
		{
			name:    "zero price ceiling is allowed",
			req:     RetrievalRequest{Query: "tacos", TopK: 10, PriceMax: floatPtr(0)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateRequest() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateRequest() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("ValidateRequest() error %v should wrap ErrInvalidRequest", err)
			}
		})
	}
}

func TestValidateResult(t *testing.T) {
	t.Run("valid result", func(t *testing.T) {
		err := ValidateResult(Result{ID: "item-1", Score: 0.5})
		if err != nil {
			t.Fatalf("ValidateResult() unexpected error: %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		err := ValidateResult(Result{Score: 0.5})
		if !errors.Is(err, ErrEmptyResultID) {
			t.Fatalf("ValidateResult() error = %v, want %v", err, ErrEmptyResultID)
		}
	})
}
