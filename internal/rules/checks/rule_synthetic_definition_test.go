package checks

import (
	"strings"
	"testing"

	"synthcheck/internal/rules"
)

func TestSyntheticDefinitionIdentity(t *testing.T) {
	r := &SyntheticDefinitionRule{}
	if r.ID() != "rule_2_1_wa" {
		t.Fatalf("ID = %q", r.ID())
	}
	if r.Name() != "Rule 2(1)(wa)" {
		t.Fatalf("Name = %q", r.Name())
	}
}

func TestSyntheticDefinitionFullDefinition(t *testing.T) {
	text := "Synthetically generated information means information that is artificially or " +
		"algorithmically created, generated, modified or altered using a computer resource, " +
		"in a manner that appears reasonably authentic or true."

	res := (&SyntheticDefinitionRule{}).Evaluate(text)

	if res.Score != 100 {
		t.Fatalf("score = %v, want 100", res.Score)
	}
	if res.Status != rules.StatusPass {
		t.Fatalf("status = %v, want Pass", res.Status)
	}
	if len(res.Evidence) == 0 {
		t.Fatal("expected evidence sentence for a near-verbatim definition")
	}
	found := false
	for _, f := range res.Findings {
		if strings.Contains(f, "highly similar definition") {
			found = true
		}
	}
	if !found {
		t.Fatalf("findings missing high-similarity note: %v", res.Findings)
	}
}

func TestSyntheticDefinitionKeywordsOnly(t *testing.T) {
	// One required keyword and no definition terms: the sentence never enters
	// the similarity scan, so only the keyword share scores.
	res := (&SyntheticDefinitionRule{}).Evaluate("We host generated content sometimes.")

	if res.Score != 5 {
		t.Fatalf("score = %v, want 5", res.Score)
	}
	if res.Status != rules.StatusFail {
		t.Fatalf("status = %v, want Fail", res.Status)
	}
	found := false
	for _, f := range res.Findings {
		if strings.Contains(f, "No clear definition") {
			found = true
		}
	}
	if !found {
		t.Fatalf("findings missing no-definition note: %v", res.Findings)
	}
}

func TestSyntheticDefinitionEmptyText(t *testing.T) {
	res := (&SyntheticDefinitionRule{}).Evaluate("")
	if res.Score != 0 || res.Status != rules.StatusFail {
		t.Fatalf("empty text: score %v status %v, want 0/Fail", res.Score, res.Status)
	}
	if len(res.Evidence) != 0 {
		t.Fatalf("empty text produced evidence: %v", res.Evidence)
	}
	if res.Recommendation == "" {
		t.Fatal("recommendation must not be empty")
	}
}

func TestSyntheticDefinitionDeterministic(t *testing.T) {
	text := "Synthetic and generated information is artificially created using a computer, " +
		"appearing authentic or true."
	first := (&SyntheticDefinitionRule{}).Evaluate(text)
	second := (&SyntheticDefinitionRule{}).Evaluate(text)
	if first.Score != second.Score || first.Status != second.Status {
		t.Fatalf("non-deterministic: %v/%v vs %v/%v", first.Score, first.Status, second.Score, second.Status)
	}
}
