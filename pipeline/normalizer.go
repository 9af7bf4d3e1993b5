package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/forkful/menusearch/core"
)

var (
	priceMaxPattern = regexp.MustCompile(`(?i)(?:under|below|less than|at most|max)\s*\$?\s*(\d+(?:\.\d+)?)`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:near|around|close to)\s+(.+?)(?:\s+(?:under|below|less than)\b.*)?$`)
)

// dietaryTerms are matched as whole substrings against the lowercased query.
// Longer terms come first so "gluten-free" wins over bare "gluten".
var dietaryTerms = []string{
	"gluten-free",
	"gluten free",
	"dairy-free",
	"dairy free",
	"nut-free",
	"vegetarian",
	"vegan",
	"halal",
	"kosher",
	"keto",
	"paleo",
}

// HeuristicParser extracts structured constraints from a query with plain
// pattern matching. It is the zero-dependency stand-in for the LLM parser
// and the substitute the orchestrator falls back to when parsing fails.
type HeuristicParser struct{}

// NewHeuristicParser creates a pattern-based query parser.
func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{}
}

// ParseQuery extracts a price ceiling, dietary restriction, and location
// hint from the query. The full query text is kept as the keyword string so
// lexical retrieval sees everything the user typed.
func (p *HeuristicParser) ParseQuery(_ context.Context, query string) (core.ParsedQuery, error) {
	parsed := core.ParsedQuery{Keywords: query}
	lowered := strings.ToLower(query)

	if m := priceMaxPattern.FindStringSubmatch(query); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 {
			parsed.PriceMax = &v
		}
	}

	for _, term := range dietaryTerms {
		if strings.Contains(lowered, term) {
			parsed.Dietary = term
			break
		}
	}

	if m := locationPattern.FindStringSubmatch(query); m != nil {
		parsed.Location = strings.Trim(strings.TrimSpace(m[1]), ".,!?")
	}

	return parsed, nil
}
