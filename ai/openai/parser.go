package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryParser implements ai.QueryParser using OpenAI-compatible chat APIs.
type QueryParser struct {
	client llms.Model
	logger *slog.Logger
}

// parsedQuery is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type parsedQuery struct {
	Keywords string   `json:"keywords"`
	PriceMax *float64 `json:"price_max"`
	Dietary  *string  `json:"dietary"`
	Location *string  `json:"location"`
}

// newQueryParser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryParser(config *ai.Config) (*QueryParser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryParser{
		client: client,
		logger: slog.Default().With("component", "openai-parser"),
	}, nil
}

// NewQueryParser creates a new query parser using the provided configuration.
//
// Returns ai.QueryParser interface to enforce abstraction.
func NewQueryParser(config *ai.Config) (ai.QueryParser, error) {
	return newQueryParser(config)
}

// ParseQuery derives structured filters from a free-text query using an LLM.
// Malformed model output falls back to treating the entire query as keywords;
// only transport-level failures surface as errors.
func (p *QueryParser) ParseQuery(ctx context.Context, query string) (core.ParsedQuery, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildParseSystemPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(query)},
		},
	}

	fallback := core.ParsedQuery{Keywords: query}

	response, err := p.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		p.logger.Error("failed to generate content", "err", err)
		return fallback, err
	}

	if len(response.Choices) < 1 {
		p.logger.Debug("no choices returned from model")
		return fallback, nil
	}

	responseText := stripCodeFences(response.Choices[0].Content)

	var parsed parsedQuery
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		p.logger.Warn("malformed parse response, falling back to raw keywords", "err", err)
		return fallback, nil
	}

	if strings.TrimSpace(parsed.Keywords) == "" {
		parsed.Keywords = query
	}

	out := core.ParsedQuery{
		Keywords: parsed.Keywords,
		PriceMax: parsed.PriceMax,
	}
	if parsed.Dietary != nil {
		out.Dietary = *parsed.Dietary
	}
	if parsed.Location != nil {
		out.Location = *parsed.Location
	}
	if out.PriceMax != nil && *out.PriceMax < 0 {
		p.logger.Warn("model returned negative price ceiling, dropping it", "price_max", *out.PriceMax)
		out.PriceMax = nil
	}

	return out, nil
}
