package checks

import (
	"fmt"
	"strings"

	"synthcheck/internal/rules"
	"synthcheck/internal/textmatch"
)

// ComplaintMechanismRule checks whether the complaint/grievance mechanism
// covers AI-generated content: 40 points for any complaint keyword, plus 60
// when a complaint sentence also mentions AI or synthetic content.
type ComplaintMechanismRule struct{}

func (r *ComplaintMechanismRule) ID() string {
	return "rule_4_4"
}

func (r *ComplaintMechanismRule) Name() string {
	return "Rule 4(4)"
}

func (r *ComplaintMechanismRule) Description() string {
	return "Complaint Handling for AI-Generated Content"
}

func (r *ComplaintMechanismRule) Evaluate(text string) rules.Result {
	lower := strings.ToLower(text)
	var score float64
	var findings, evidence []string

	complaintFound := countKeywords(lower, complaintKeywords)

	// Count complaint sentences that also mention AI/synthetic content.
	aiInComplaint := 0
	for _, sentence := range textmatch.Sentences(text) {
		sentenceLower := strings.ToLower(sentence)
		if !containsAny(sentenceLower, complaintKeywords) {
			continue
		}
		if containsAny(sentenceLower, aiContentKeywords) {
			aiInComplaint++
			evidence = append(evidence, strings.TrimSpace(sentence))
		}
	}

	if complaintFound > 0 {
		score += 40
		findings = append(findings, fmt.Sprintf("Found complaint/grievance mechanism mentioned %d times", complaintFound))
	}

	if aiInComplaint > 0 {
		score += 60
		findings = append(findings, fmt.Sprintf("Found %d mentions of AI/synthetic content in complaint handling", aiInComplaint))
	} else {
		findings = append(findings, "Complaint mechanism does not specifically mention AI-generated content")
	}

	if len(evidence) > 2 {
		evidence = evidence[:2]
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

func (r *ComplaintMechanismRule) recommendation(score float64) string {
	if score >= 70 {
		return "Complaint mechanism adequately covers AI-generated content."
	}
	return "Ensure complaint/grievance mechanism explicitly states that complaints about " +
		"AI-generated/synthetic content will be handled with same priority as other content."
}

func init() {
	rules.Register(&ComplaintMechanismRule{})
}
