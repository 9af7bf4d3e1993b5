package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// RelevanceScorer implements ai.RelevanceScorer using OpenAI-compatible chat
// APIs. A single judgment call scores a whole batch of candidates, avoiding
// one round trip per item.
type RelevanceScorer struct {
	client llms.Model
	logger *slog.Logger
}

// scoredItem is an internal type used for JSON unmarshaling.
type scoredItem struct {
	ID        string  `json:"id"`
	Relevance float64 `json:"relevance"`
}

// judgment is the wrapper structure for the LLM's JSON response.
type judgment struct {
	Scores []scoredItem `json:"scores"`
}

// newRelevanceScorer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRelevanceScorer(config *ai.Config) (*RelevanceScorer, error) {
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

	return &RelevanceScorer{
		client: client,
		logger: slog.Default().With("component", "openai-scorer"),
	}, nil
}

// NewRelevanceScorer creates a new relevance scorer using the provided configuration.
//
// Returns ai.RelevanceScorer interface to enforce abstraction.
func NewRelevanceScorer(config *ai.Config) (ai.RelevanceScorer, error) {
	return newRelevanceScorer(config)
}

// ScoreRelevance judges each result's relevance to the query on a 0-10 scale.
// Entries missing from the model's response are returned as ai.Unscored so
// the caller can substitute its own fallback.
func (s *RelevanceScorer) ScoreRelevance(ctx context.Context, query string, results []core.Result) ([]float64, error) {
	scores := make([]float64, len(results))
	for i := range scores {
		scores[i] = ai.Unscored
	}
	if len(results) == 0 {
		return scores, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildScoreSystemPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildScoreUserPrompt(query, results))},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		s.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		s.logger.Debug("no choices returned from model")
		return scores, nil
	}

	responseText := stripCodeFences(response.Choices[0].Content)

	var parsed judgment
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		s.logger.Warn("malformed judgment response", "err", err)
		return scores, nil
	}

	byID := make(map[string]float64, len(parsed.Scores))
	for _, item := range parsed.Scores {
		byID[item.ID] = clampScore(item.Relevance)
	}

	for i, res := range results {
		if score, ok := byID[res.ID]; ok {
			scores[i] = score
		}
	}

	return scores, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
