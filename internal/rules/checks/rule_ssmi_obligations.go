package checks

import (
	"fmt"
	"strings"

	"synthcheck/internal/rules"
	"synthcheck/internal/textmatch"
)

// SSMIObligationsRule checks the additional obligations of significant
// social media intermediaries (50 lakh+ users) as three equally-weighted
// (33.33 points each) boolean sub-requirements: user declarations, technical
// verification measures, and synthetic content labeling. Whether the
// platform self-identifies as an SSMI is recorded but does not score.
type SSMIObligationsRule struct{}

func (r *SSMIObligationsRule) ID() string {
	return "rule_4_1a"
}

func (r *SSMIObligationsRule) Name() string {
	return "Rule 4(1A)"
}

func (r *SSMIObligationsRule) Description() string {
	return "SSMI Requirements (50 Lakh+ Users)"
}

func (r *SSMIObligationsRule) Evaluate(text string) rules.Result {
	lower := strings.ToLower(text)
	var findings, evidence []string

	requirements := map[string]bool{
		"user_declaration":       false,
		"technical_verification": false,
		"synthetic_labeling":     false,
	}

	if countKeywords(lower, declarationKeywords) >= 2 {
		requirements["user_declaration"] = true
		findings = append(findings, "User declaration for authentic vs synthetic content mentioned")
		for _, sentence := range textmatch.Sentences(text) {
			sentenceLower := strings.ToLower(sentence)
			if strings.Contains(sentenceLower, "declaration") || strings.Contains(sentenceLower, "declare") {
				evidence = append(evidence, strings.TrimSpace(sentence))
				break
			}
		}
	}

	if countKeywords(lower, verificationKeywords) >= 2 {
		requirements["technical_verification"] = true
		findings = append(findings, "Technical verification measures mentioned")
	}

	if countKeywords(lower, labelingKeywords) >= 2 && strings.Contains(lower, "synthetic") {
		requirements["synthetic_labeling"] = true
		findings = append(findings, "Ensures synthetic content labeling")
	}

	var score float64
	for _, met := range requirements {
		if met {
			score += 33.33
		}
	}

	ssmiMentioned := containsAny(lower, ssmiIndicators)
	if ssmiMentioned {
		findings = append(findings, "Platform identifies as SSMI (50 lakh+ users)")
	}
	if score == 0 {
		findings = append(findings, "No SSMI-specific requirements found")
	}
	if len(evidence) > 2 {
		evidence = evidence[:2]
	}

	return rules.Result{
		Rule:            r.Name(),
		Description:     r.Description(),
		Score:           score,
		Status:          rules.StatusForScore(score, 70, 50),
		Findings:        findings,
		Evidence:        evidence,
		SubRequirements: requirements,
		SSMIMentioned:   &ssmiMentioned,
		Recommendation:  r.recommendation(requirements),
	}
}

func (r *SSMIObligationsRule) recommendation(requirements map[string]bool) string {
	var missing []string
	for _, key := range []string{"user_declaration", "technical_verification", "synthetic_labeling"} {
		if !requirements[key] {
			missing = append(missing, titleWords(key))
		}
	}
	if len(missing) == 0 {
		return "SSMI requirements are adequately addressed."
	}
	return fmt.Sprintf("If platform has 50 lakh+ users, add: %s. Obtain user declarations, deploy "+
		"technical verification, and ensure synthetic content labeling.", strings.Join(missing, ", "))
}

func init() {
	rules.Register(&SSMIObligationsRule{})
}
