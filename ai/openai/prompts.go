package openai

import (
	"fmt"
	"strings"

	"github.com/forkful/menusearch/core"
)

const parseResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "string"
    },
    "price_max": {
      "type": ["number", "null"],
      "minimum": 0
    },
    "dietary": {
      "type": ["string", "null"]
    },
    "location": {
      "type": ["string", "null"]
    }
  },
  "required": ["keywords"],
  "additionalProperties": false
}`

const parsePromptTemplate = `Parse a restaurant search query into structured components and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "keywords" holds the main search terms (e.g., "tacos", "pizza"). Never leave it empty.
- "price_max" holds the maximum price if one is mentioned (e.g., 15 for "under $15"), null otherwise.
- "dietary" holds a dietary restriction if mentioned (e.g., "vegan", "gluten-free"), null otherwise.
- "location" holds a location if mentioned (e.g., "near Harvard"), null otherwise.`

func buildParseSystemPrompt() string {
	return fmt.Sprintf(parsePromptTemplate, parseResponseSchema)
}

const scoreResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "scores": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "string"
          },
          "relevance": {
            "type": "number",
            "minimum": 0,
            "maximum": 10
          }
        },
        "required": ["id", "relevance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["scores"],
  "additionalProperties": false
}`

const scorePromptTemplate = `Evaluate how relevant each candidate menu item is to the user's search query and return the scores as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Score every candidate exactly once, using its "id" verbatim.
- 10 means a perfect match for the query, 0 means completely irrelevant.
- Judge by the item text, price, and restaurant only. Do not invent items.`

func buildScoreSystemPrompt() string {
	return fmt.Sprintf(scorePromptTemplate, scoreResponseSchema)
}

// buildScoreUserPrompt renders the query and candidates for the judgment call.
func buildScoreUserPrompt(query string, results []core.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q\n\nCandidates:\n", query)
	for _, res := range results {
		fmt.Fprintf(&b, "- id: %s\n  item: %s\n", res.ID, res.Metadata.Text())
		if price, ok := res.Metadata.Price(); ok {
			fmt.Fprintf(&b, "  price: $%.2f\n", price)
		}
		if restaurant := res.Metadata.String("restaurant"); restaurant != "" {
			fmt.Fprintf(&b, "  restaurant: %s\n", restaurant)
		}
	}
	return b.String()
}
