package textmatch

import "regexp"

// Sentence boundaries are a terminator immediately followed by whitespace.
// The terminator is consumed; a trailing terminator with no following
// whitespace stays attached to the final sentence.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Sentences splits text into sentences on `.`, `!` or `?` followed by
// whitespace. Empty input yields a single empty sentence, matching the
// behavior of splitting an empty string.
func Sentences(text string) []string {
	return sentenceBoundary.Split(text, -1)
}
