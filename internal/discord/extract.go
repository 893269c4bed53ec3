package discord

import "regexp"

// urlPattern matches http(s) URLs up to the first delimiter character.
// The delimiter set matches what chat clients refuse to linkify.
var urlPattern = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

// ExtractURLs pulls well-formed URLs out of free text, deduplicating while
// preserving first-seen order. Empty input yields an empty slice.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}
