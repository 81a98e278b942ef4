// Package checks contains the regulatory rule evaluators. Each rule lives in
// its own file and registers itself on import; the keyword sets, pattern
// sets, weights, and thresholds below are the single source of truth for
// scoring.
package checks

import (
	"regexp"
	"strings"

	"synthcheck/internal/textmatch"
)

// officialDefinition is the reference definition of synthetically generated
// information that candidate policy sentences are scored against.
const officialDefinition = "Information that is artificially or algorithmically created, generated, " +
	"modified or altered using a computer resource, in a manner that appears " +
	"reasonably authentic or true"

var (
	// Rule 2(1)(wa): definition of synthetically generated information.
	definitionKeywords = []string{"synthetic", "generated", "artificial", "algorithmic"}
	definitionTerms    = []string{"information", "created", "computer", "authentic", "true"}

	// Rule 4(2): automated detection tooling.
	detectionKeywords = []string{"automated", "tool", "detect", "ai", "synthetic", "harmful"}
	detectionPatterns = compilePatterns(
		`automated\s+tool`,
		`detection\s+(?:tool|system|mechanism)`,
		`ai\s+(?:content|detection)`,
		`synthetic\s+(?:content|detection)`,
	)

	// Rule 4(4): complaint handling.
	complaintKeywords = []string{"complaint", "grievance", "report", "appeal"}
	aiContentKeywords = []string{"ai", "synthetic", "generated", "deepfake", "artificial"}

	// Rule 3(1)(b) proviso: prohibited harmful AI content.
	prohibitedPhrases  = []string{"prohibited", "not permitted", "not allowed"}
	deepfakePattern    = compilePattern(`deepfake`)
	misleadingPattern  = compilePattern(`misleading.*?(?:information|content)`)
	manipulatedPattern = compilePattern(`manipulated.*?(?:media|content|information)`)
	immunityPattern    = compilePattern(`section\s+79`)

	// Rule 3(3): labeling due diligence.
	labelKeywords       = []string{"label", "metadata", "identifier", "mark"}
	surfaceAreaPatterns = compilePatterns(
		`10\s*%`,
		`ten\s+percent`,
		`surface\s+area`,
		`duration`,
	)
	immediateKeywords   = []string{"immediate", "readily", "easily", "identifiable"}
	prohibitionKeywords = []string{"prohibit", "prevent", "not allow", "removal", "modification"}

	// Rule 4(1A): significant social media intermediary obligations.
	declarationKeywords  = []string{"declaration", "user", "authentic", "synthetic"}
	verificationKeywords = []string{"verification", "technical", "measure"}
	labelingKeywords     = []string{"label", "ensure", "synthetic"}
	ssmiIndicators       = []string{"50 lakh", "significant social media", "ssmi", "5 million"}
)

func compilePattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, compilePattern(e))
	}
	return out
}

// countKeywords returns how many of the keywords appear in the lowercased
// text. Matching is plain substring containment; each keyword counts once.
func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

// presentKeywords returns the keywords that appear in the lowercased text,
// in table order.
func presentKeywords(lower string, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// firstMatchSnippet returns an evidence snippet around the first match of the
// pattern, or "" when the pattern never matches.
func firstMatchSnippet(text string, p *regexp.Regexp) string {
	loc := p.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	return textmatch.Snippet(text, loc[0], loc[1])
}

// firstSentenceWith returns the first sentence containing any of the
// keywords (case-insensitive), trimmed, or "" when none does.
func firstSentenceWith(text string, keywords []string) string {
	for _, s := range textmatch.Sentences(text) {
		if containsAny(strings.ToLower(s), keywords) {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// titleWords converts a sub-requirement key such as "surface_area" to a
// display form such as "Surface Area".
func titleWords(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
