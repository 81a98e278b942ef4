// Package imagecheck detects AI-generation labels in images. An image is
// checked three ways: provenance text in its metadata, watermark-like visual
// structure in its pixels, and AI keywords in OCR-extracted text. The
// combined label coverage estimate is measured against the 10% rule for
// synthetic content marking.
package imagecheck

import (
	"image"
	"sort"
	"strings"
)

// aiKeywords are the provenance terms that mark content as AI-generated.
// Matching is case-insensitive substring containment against lowercased
// input.
var aiKeywords = []string{
	"ai", "generated", "synthetic", "artificial", "deepfake",
	"created by ai", "ai-generated", "made with ai", "dall-e",
	"midjourney", "stable diffusion", "generated image",
}

// coverageThreshold is the minimum label coverage percent required of
// synthetic content.
const coverageThreshold = 10.0

// ocrCoverageFloor is the coverage estimate assigned when OCR finds an AI
// label but no measurable region backs it.
const ocrCoverageFloor = 5.0

// cornerCoverageEstimate is the coverage percent attributed to each
// anomalous corner.
const cornerCoverageEstimate = 5.0

func containsAIKeyword(lower string) bool {
	for _, kw := range aiKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Analyze runs the metadata, visual, and OCR checks over a decoded image and
// combines them into a label analysis. A nil image yields a failed analysis.
func Analyze(img image.Image, meta Metadata, ocrLines []string) Analysis {
	if img == nil {
		return Failure("image could not be decoded")
	}
	if ocrLines == nil {
		ocrLines = []string{}
	}

	metadataCheck := checkMetadata(meta)
	visual := analyzeVisual(img)
	ocrPositive := ocrHasAILabel(ocrLines)

	hasLabel := metadataCheck.HasAIIndicator || visual.HasWatermark || ocrPositive
	coverage := labelCoverage(visual, ocrPositive)

	bounds := img.Bounds()
	return Analysis{
		Success:               true,
		HasLabel:              hasLabel,
		LabelCoverage:         coverage,
		CompliesWith10Percent: coverage >= coverageThreshold,
		MetadataCheck:         metadataCheck,
		VisualAnalysis:        visual,
		OCRResults:            ocrLines,
		ImageDimensions:       Dimensions{Width: bounds.Dx(), Height: bounds.Dy()},
	}
}

// Failure returns the analysis recorded when an image cannot be fetched or
// decoded: success=false with the reason and zeroed findings.
func Failure(errMsg string) Analysis {
	return Analysis{
		Success: false,
		Error:   errMsg,
		MetadataCheck: MetadataCheck{
			AIRelatedFields: []TaggedField{},
		},
		VisualAnalysis: VisualAnalysis{
			WatermarkRegions: []WatermarkRegion{},
			CornerAnalysis:   map[string]CornerResult{},
		},
		OCRResults: []string{},
	}
}

// labelCoverage estimates the percent of the image occupied by labels:
// measured watermark regions, plus a fixed estimate per anomalous corner,
// with an OCR-backed floor. Clamped to [0, 100].
func labelCoverage(visual VisualAnalysis, ocrPositive bool) float64 {
	var total float64
	for _, region := range visual.WatermarkRegions {
		total += region.CoveragePercent
	}
	for _, corner := range visual.CornerAnalysis {
		if corner.HasAnomaly {
			total += cornerCoverageEstimate
		}
	}
	if ocrPositive && total < ocrCoverageFloor {
		total = ocrCoverageFloor
	}
	if total > 100 {
		total = 100
	}
	return total
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
