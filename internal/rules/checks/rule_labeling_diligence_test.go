package checks

import (
	"strings"
	"testing"

	"synthcheck/internal/rules"
)

var labelingSubKeys = []string{
	"label_required",
	"surface_area",
	"immediate_identification",
	"prohibition_modification",
}

func TestLabelingDiligenceAllRequirements(t *testing.T) {
	text := "All AI content must carry a visible label and embedded metadata mark. " +
		"Labels must cover at least 10% of the display surface area. " +
		"Labels must be immediately identifiable to any viewer. " +
		"We prohibit the removal or modification of these labels."

	res := (&LabelingDiligenceRule{}).Evaluate(text)

	if res.Score != 100 {
		t.Fatalf("score = %v, want 100", res.Score)
	}
	if res.Status != rules.StatusPass {
		t.Fatalf("status = %v, want Pass", res.Status)
	}
	for _, key := range labelingSubKeys {
		met, ok := res.SubRequirements[key]
		if !ok {
			t.Fatalf("sub_requirements missing key %q", key)
		}
		if !met {
			t.Fatalf("sub-requirement %q not met: %v", key, res.SubRequirements)
		}
	}
}

func TestLabelingDiligenceSingleRequirement(t *testing.T) {
	res := (&LabelingDiligenceRule{}).Evaluate("Content notices cover ten percent of the screen.")

	if res.Score != 25 {
		t.Fatalf("score = %v, want 25", res.Score)
	}
	if res.Status != rules.StatusFail {
		t.Fatalf("status = %v, want Fail", res.Status)
	}
	if !res.SubRequirements["surface_area"] {
		t.Fatalf("surface_area not met: %v", res.SubRequirements)
	}
	for _, key := range []string{"label_required", "immediate_identification", "prohibition_modification"} {
		if res.SubRequirements[key] {
			t.Fatalf("sub-requirement %q unexpectedly met", key)
		}
	}
}

func TestLabelingDiligenceThreeOfFourIsPartial(t *testing.T) {
	text := "Synthetic content must carry a label with metadata. Labels occupy 10% of " +
		"the surface area and are immediately visible."

	res := (&LabelingDiligenceRule{}).Evaluate(text)

	if res.Score != 75 {
		t.Fatalf("score = %v, want 75", res.Score)
	}
	if res.Status != rules.StatusPass {
		t.Fatalf("status = %v, want Pass at the 75 threshold", res.Status)
	}
}

func TestLabelingDiligenceEmptyText(t *testing.T) {
	res := (&LabelingDiligenceRule{}).Evaluate("")

	if res.Score != 0 || res.Status != rules.StatusFail {
		t.Fatalf("empty text: score %v status %v, want 0/Fail", res.Score, res.Status)
	}
	if len(res.SubRequirements) != 4 {
		t.Fatalf("sub_requirements = %v, want all four keys present", res.SubRequirements)
	}
	for _, key := range labelingSubKeys {
		if res.SubRequirements[key] {
			t.Fatalf("sub-requirement %q met on empty text", key)
		}
	}
}

func TestLabelingDiligenceRecommendationNamesMissing(t *testing.T) {
	res := (&LabelingDiligenceRule{}).Evaluate("")

	for _, want := range []string{"Label Required", "Surface Area", "Immediate Identification", "Prohibition Modification"} {
		if !strings.Contains(res.Recommendation, want) {
			t.Fatalf("recommendation %q missing %q", res.Recommendation, want)
		}
	}
}
