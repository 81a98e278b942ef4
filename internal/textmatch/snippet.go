package textmatch

import "strings"

// snippetContext is how many characters of surrounding context a snippet
// keeps on each side of a match.
const snippetContext = 150

// Snippet extracts an evidence snippet around the match at [start, end) in
// text: up to snippetContext characters of context on each side, trimmed and
// wrapped in ellipses.
func Snippet(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		start = end
	}

	from := start - snippetContext
	if from < 0 {
		from = 0
	}
	to := end + snippetContext
	if to > len(text) {
		to = len(text)
	}
	return "..." + strings.TrimSpace(text[from:to]) + "..."
}
