package rules

import (
	"fmt"
	"math"
)

const (
	OverallCompliant          = "Compliant"
	OverallPartiallyCompliant = "Partially Compliant"
	OverallNonCompliant       = "Non-Compliant"
)

// Report is the aggregate compliance report over all evaluated rules.
// Field names are part of the wire format and must not change.
type Report struct {
	// OverallScore is the unweighted arithmetic mean of the rule scores,
	// rounded to 2 decimal places. Every clause counts equally regardless of
	// its internal sub-weight complexity.
	OverallScore  float64 `json:"overall_score"`
	OverallStatus string  `json:"overall_status"`
	// StatusColor is a presentation hint bound one-to-one to OverallStatus.
	StatusColor string            `json:"status_color"`
	Rules       map[string]Result `json:"rules"`
	Summary     string            `json:"summary"`
}

// BuildReport evaluates every rule in ruleSet against text and aggregates the
// results. It never fails: empty text degrades to zero scores, and a
// panicking evaluator is isolated so the remaining rules still report.
func BuildReport(text string, ruleSet []Rule) Report {
	results := make(map[string]Result, len(ruleSet))
	var total float64
	for _, r := range ruleSet {
		res := safeEvaluate(r, text)
		results[r.ID()] = res
		total += res.Score
	}

	var overall float64
	if len(ruleSet) > 0 {
		overall = total / float64(len(ruleSet))
	}

	status := OverallNonCompliant
	color := "danger"
	switch {
	case overall >= 70:
		status = OverallCompliant
		color = "success"
	case overall >= 40:
		status = OverallPartiallyCompliant
		color = "warning"
	}

	return Report{
		OverallScore:  math.Round(overall*100) / 100,
		OverallStatus: status,
		StatusColor:   color,
		Rules:         results,
		Summary:       buildSummary(results, overall),
	}
}

func buildSummary(results map[string]Result, overall float64) string {
	var passed, partial, failed int
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			passed++
		case StatusPartial:
			partial++
		case StatusFail:
			failed++
		}
	}
	n := len(results)
	return fmt.Sprintf("Overall Compliance Score: %.2f%% | Passed: %d/%d | Partial: %d/%d | Failed: %d/%d",
		overall, passed, n, partial, n, failed, n)
}

// safeEvaluate isolates a faulting evaluator: one failing rule must not
// abort the others. The faulting rule reports a zero-score Fail instead.
func safeEvaluate(r Rule, text string) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{
				Rule:           r.Name(),
				Description:    r.Description(),
				Score:          0,
				Status:         StatusFail,
				Findings:       []string{fmt.Sprintf("Rule evaluation failed: %v", rec)},
				Evidence:       []string{},
				Recommendation: "Evaluation could not be completed for this rule; re-run the scan.",
			}
		}
	}()
	return r.Evaluate(text)
}
