package checks

import (
	"fmt"
	"strings"

	"synthcheck/internal/rules"
)

// LabelingDiligenceRule checks the labeling requirements for synthetic
// content as four equally-weighted (25 points each) boolean sub-requirements:
// labeling/metadata, the 10% surface-area/duration rule, immediate
// identifiability, and prohibition of label removal or modification.
type LabelingDiligenceRule struct{}

func (r *LabelingDiligenceRule) ID() string {
	return "rule_3_3"
}

func (r *LabelingDiligenceRule) Name() string {
	return "Rule 3(3)"
}

func (r *LabelingDiligenceRule) Description() string {
	return "Due Diligence - Synthetic Content Labeling Requirements"
}

func (r *LabelingDiligenceRule) Evaluate(text string) rules.Result {
	lower := strings.ToLower(text)
	var findings, evidence []string

	requirements := map[string]bool{
		"label_required":           false,
		"surface_area":             false,
		"immediate_identification": false,
		"prohibition_modification": false,
	}

	if countKeywords(lower, labelKeywords) >= 2 {
		requirements["label_required"] = true
		findings = append(findings, "Platform requires labeling/metadata for AI content")
		if sentence := firstSentenceWith(text, labelKeywords); sentence != "" {
			evidence = append(evidence, sentence)
		}
	}

	for _, p := range surfaceAreaPatterns {
		if p.MatchString(text) {
			requirements["surface_area"] = true
			findings = append(findings, "10% surface area/duration requirement mentioned")
			break
		}
	}

	if containsAny(lower, immediateKeywords) {
		requirements["immediate_identification"] = true
		findings = append(findings, "Immediate identification requirement mentioned")
	}

	prohibitionCount := countKeywords(lower, prohibitionKeywords)
	if prohibitionCount >= 2 && (strings.Contains(lower, "removal") || strings.Contains(lower, "modification")) {
		requirements["prohibition_modification"] = true
		findings = append(findings, "Prohibition of label modification/removal mentioned")
	}

	var score float64
	for _, met := range requirements {
		if met {
			score += 25
		}
	}

	if score == 0 {
		findings = append(findings, "No specific labeling requirements for synthetic content found")
	}
	if len(evidence) > 2 {
		evidence = evidence[:2]
	}

	return rules.Result{
		Rule:            r.Name(),
		Description:     r.Description(),
		Score:           score,
		Status:          rules.StatusForScore(score, 75, 50),
		Findings:        findings,
		Evidence:        evidence,
		SubRequirements: requirements,
		Recommendation:  r.recommendation(requirements),
	}
}

func (r *LabelingDiligenceRule) recommendation(requirements map[string]bool) string {
	var missing []string
	for _, key := range []string{"label_required", "surface_area", "immediate_identification", "prohibition_modification"} {
		if !requirements[key] {
			missing = append(missing, titleWords(key))
		}
	}
	if len(missing) == 0 {
		return "Labeling requirements are comprehensive."
	}
	return fmt.Sprintf("Add requirements for: %s. Ensure labels cover 10%% surface area, enable "+
		"immediate identification, and prohibit modification/removal.", strings.Join(missing, ", "))
}

func init() {
	rules.Register(&LabelingDiligenceRule{})
}
