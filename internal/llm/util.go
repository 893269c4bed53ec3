// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock extracts JSON from a markdown code fence if one is present.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
// Only the content between the first pair of fence markers is kept.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}

	// Handle generic ``` ... ``` blocks
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		// Skip a potential language identifier on the fence line
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			firstLine := strings.TrimSpace(rest[:nl])
			if firstLine != "" && len(firstLine) < 20 &&
				!strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				rest = rest[nl+1:]
			}
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}

	return text
}
