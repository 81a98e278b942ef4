package checks

import (
	"strings"

	"synthcheck/internal/rules"
)

// ProhibitedContentRule checks whether harmful AI-generated content is
// explicitly prohibited: 30 points for a prohibition phrase, 35 for
// deepfakes, 20 for misleading/manipulated content, 15 for a safe-harbor
// immunity reference.
type ProhibitedContentRule struct{}

func (r *ProhibitedContentRule) ID() string {
	return "rule_3_1_b"
}

func (r *ProhibitedContentRule) Name() string {
	return "Rule 3(1)(b) Proviso"
}

func (r *ProhibitedContentRule) Description() string {
	return "Prohibition of Harmful AI-Generated Content"
}

func (r *ProhibitedContentRule) Evaluate(text string) rules.Result {
	lower := strings.ToLower(text)
	var score float64
	var findings, evidence []string

	prohibitedFound := containsAny(lower, prohibitedPhrases)

	deepfake := firstMatchSnippet(text, deepfakePattern)
	misleading := firstMatchSnippet(text, misleadingPattern)
	manipulated := firstMatchSnippet(text, manipulatedPattern)
	immunity := firstMatchSnippet(text, immunityPattern)

	for _, snippet := range []string{deepfake, misleading, manipulated, immunity} {
		if snippet != "" {
			evidence = append(evidence, snippet)
		}
	}

	if prohibitedFound {
		score += 30
		findings = append(findings, "Platform mentions prohibited content")
	}
	if deepfake != "" {
		score += 35
		findings = append(findings, "Deepfakes explicitly mentioned as prohibited")
	}
	if misleading != "" || manipulated != "" {
		score += 20
		findings = append(findings, "Misleading/manipulated AI content mentioned")
	}
	if immunity != "" {
		score += 15
		findings = append(findings, "Section 79 immunity mentioned")
	}

	if len(evidence) == 0 {
		findings = append(findings, "No specific mention of harmful AI-generated content types")
	}
	if len(evidence) > 3 {
		evidence = evidence[:3]
	}

	score = rules.ClampScore(score)
	return rules.Result{
		Rule:           r.Name(),
		Description:    r.Description(),
		Score:          score,
		Status:         rules.StatusForScore(score, 70, 40),
		Findings:       findings,
		Evidence:       evidence,
		Recommendation: r.recommendation(score),
	}
}

func (r *ProhibitedContentRule) recommendation(score float64) string {
	if score >= 70 {
		return "Prohibited content policy adequately covers harmful AI content."
	}
	return "Explicitly list deepfakes, misleading AI-generated content, and manipulated media as " +
		"prohibited content. Mention that removal maintains Section 79 safe harbor protection."
}

func init() {
	rules.Register(&ProhibitedContentRule{})
}
