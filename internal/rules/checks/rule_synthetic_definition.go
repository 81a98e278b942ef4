package checks

import (
	"fmt"
	"strings"

	"synthcheck/internal/rules"
	"synthcheck/internal/textmatch"
)

// SyntheticDefinitionRule checks whether the policy defines synthetically
// generated information. 20% of the score comes from keyword coverage, up to
// 80% from the best-matching sentence's similarity against the official
// definition, banded at 0.6 / 0.4 / 0.2.
type SyntheticDefinitionRule struct{}

func (r *SyntheticDefinitionRule) ID() string {
	return "rule_2_1_wa"
}

func (r *SyntheticDefinitionRule) Name() string {
	return "Rule 2(1)(wa)"
}

func (r *SyntheticDefinitionRule) Description() string {
	return "Definition of Synthetically Generated Information"
}

func (r *SyntheticDefinitionRule) Evaluate(text string) rules.Result {
	lower := strings.ToLower(text)
	var score float64
	var findings, evidence []string

	found := presentKeywords(lower, definitionKeywords)
	score += float64(len(found)) / float64(len(definitionKeywords)) * 20
	if len(found) > 0 {
		findings = append(findings, fmt.Sprintf("Found %d/%d required keywords: %s",
			len(found), len(definitionKeywords), strings.Join(found, ", ")))
	}

	bestScore, bestSentence := r.bestDefinitionMatch(text)

	var definitionScore float64
	switch {
	case bestScore > 0.6:
		definitionScore = 80
		findings = append(findings, fmt.Sprintf("Found highly similar definition (similarity: %.2f%%)", bestScore*100))
		evidence = append(evidence, bestSentence)
	case bestScore > 0.4:
		definitionScore = 60
		findings = append(findings, fmt.Sprintf("Found partially matching definition (similarity: %.2f%%)", bestScore*100))
		evidence = append(evidence, bestSentence)
	case bestScore > 0.2:
		definitionScore = 30
		findings = append(findings, fmt.Sprintf("Found weak definition match (similarity: %.2f%%)", bestScore*100))
		evidence = append(evidence, bestSentence)
	default:
		findings = append(findings, "No clear definition of synthetically generated information found")
	}
	score += definitionScore

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

// bestDefinitionMatch scans sentences that carry enough definition terms (or
// required keywords) and returns the highest similarity against the official
// definition along with the matching sentence.
func (r *SyntheticDefinitionRule) bestDefinitionMatch(text string) (float64, string) {
	reference := strings.ToLower(officialDefinition)
	var bestScore float64
	var bestSentence string

	for _, sentence := range textmatch.Sentences(text) {
		lower := strings.ToLower(sentence)

		termCount := countKeywords(lower, definitionTerms)
		keywordCount := countKeywords(lower, definitionKeywords)
		if termCount < 3 && keywordCount < 2 {
			continue
		}

		similarity := textmatch.Similarity(lower, reference)
		if similarity > bestScore {
			bestScore = similarity
			bestSentence = strings.TrimSpace(sentence)
		}
	}
	return bestScore, bestSentence
}

func (r *SyntheticDefinitionRule) recommendation(score float64) string {
	if score >= 70 {
		return "Definition is adequate and compliant."
	}
	return "Add clear definition: 'Synthetically Generated Information means information that is " +
		"artificially or algorithmically created, generated, modified or altered using a computer " +
		"resource, in a manner that appears reasonably authentic or true.'"
}

func init() {
	rules.Register(&SyntheticDefinitionRule{})
}
