package checks

import (
	"fmt"
	"strings"

	"synthcheck/internal/rules"
)

// AutomatedDetectionRule checks whether the platform commits to automated
// tooling for detecting harmful synthetic content: 20 points per matched
// pattern (capped at 60) plus 10 points per present keyword (capped at 40).
type AutomatedDetectionRule struct{}

func (r *AutomatedDetectionRule) ID() string {
	return "rule_4_2"
}

func (r *AutomatedDetectionRule) Name() string {
	return "Rule 4(2)"
}

func (r *AutomatedDetectionRule) Description() string {
	return "Deployment of Automated Tools for Detection"
}

func (r *AutomatedDetectionRule) Evaluate(text string) rules.Result {
	lower := strings.ToLower(text)
	var findings, evidence []string

	patternsFound := 0
	for _, p := range detectionPatterns {
		snippet := firstMatchSnippet(text, p)
		if snippet == "" {
			continue
		}
		patternsFound++
		evidence = append(evidence, snippet)
	}

	keywordsFound := countKeywords(lower, detectionKeywords)

	patternScore := float64(patternsFound) * 20
	if patternScore > 60 {
		patternScore = 60
	}
	keywordScore := float64(keywordsFound) * 10
	if keywordScore > 40 {
		keywordScore = 40
	}
	score := rules.ClampScore(patternScore + keywordScore)

	findings = append(findings, fmt.Sprintf("Found %d pattern matches for automated detection tools", patternsFound))
	findings = append(findings, fmt.Sprintf("Found %d/%d relevant keywords", keywordsFound, len(detectionKeywords)))
	if patternsFound == 0 {
		findings = append(findings, "No mention of automated detection tools found")
	}

	if len(evidence) > 3 {
		evidence = evidence[:3]
	}

	return rules.Result{
		Rule:           r.Name(),
		Description:    r.Description(),
		Score:          score,
		Status:         rules.StatusForScore(score, 60, 30),
		Findings:       findings,
		Evidence:       evidence,
		Recommendation: r.recommendation(score),
	}
}

func (r *AutomatedDetectionRule) recommendation(score float64) string {
	if score >= 60 {
		return "Automated detection tools are adequately mentioned."
	}
	return "Explicitly mention deployment of automated tools/systems for detecting harmful synthetic " +
		"content, including AI-powered detection mechanisms."
}

func init() {
	rules.Register(&AutomatedDetectionRule{})
}
