package openai

import "strings"

// stripCodeFences removes markdown code fences the model may wrap its JSON
// response in, despite being told not to.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
