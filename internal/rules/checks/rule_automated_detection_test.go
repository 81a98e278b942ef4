package checks

import (
	"strings"
	"testing"

	"synthcheck/internal/rules"
)

func TestAutomatedDetectionStrongPolicy(t *testing.T) {
	text := "Our platform deploys automated tools to detect AI and synthetic harmful " +
		"content using an AI content detection system."

	res := (&AutomatedDetectionRule{}).Evaluate(text)

	// 3 patterns (capped pattern score 60) + 6/6 keywords (capped 40).
	if res.Score != 100 {
		t.Fatalf("score = %v, want 100", res.Score)
	}
	if res.Status != rules.StatusPass {
		t.Fatalf("status = %v, want Pass", res.Status)
	}
	if len(res.Evidence) == 0 || len(res.Evidence) > 3 {
		t.Fatalf("evidence count = %d, want 1..3", len(res.Evidence))
	}
}

func TestAutomatedDetectionKeywordOnly(t *testing.T) {
	// Keywords without any of the phrase patterns.
	res := (&AutomatedDetectionRule{}).Evaluate("We detect harmful material with ai assistance.")

	// detect + harmful + ai = 3 keywords, no patterns.
	if res.Score != 30 {
		t.Fatalf("score = %v, want 30", res.Score)
	}
	if res.Status != rules.StatusPartial {
		t.Fatalf("status = %v, want Partial", res.Status)
	}
	noTools := false
	for _, f := range res.Findings {
		if strings.Contains(f, "No mention of automated detection tools") {
			noTools = true
		}
	}
	if !noTools {
		t.Fatalf("findings missing zero-pattern note: %v", res.Findings)
	}
}

func TestAutomatedDetectionEmptyText(t *testing.T) {
	res := (&AutomatedDetectionRule{}).Evaluate("")
	if res.Score != 0 || res.Status != rules.StatusFail {
		t.Fatalf("empty text: score %v status %v, want 0/Fail", res.Score, res.Status)
	}
	wantFindings := []string{
		"Found 0 pattern matches for automated detection tools",
		"Found 0/6 relevant keywords",
		"No mention of automated detection tools found",
	}
	if len(res.Findings) != len(wantFindings) {
		t.Fatalf("findings = %v, want %v", res.Findings, wantFindings)
	}
	for i, want := range wantFindings {
		if res.Findings[i] != want {
			t.Fatalf("findings[%d] = %q, want %q", i, res.Findings[i], want)
		}
	}
}

func TestAutomatedDetectionEvidenceCap(t *testing.T) {
	text := "We use an automated tool here. Our detection system runs continuously. " +
		"AI content is flagged. Synthetic content is reviewed."

	res := (&AutomatedDetectionRule{}).Evaluate(text)
	if len(res.Evidence) > 3 {
		t.Fatalf("evidence count = %d, want at most 3", len(res.Evidence))
	}
}
