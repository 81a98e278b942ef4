package data

const (
	// DepPolicyText is the plain-text extraction of the platform's published
	// policy page (markup stripped, whitespace collapsed).
	DepPolicyText DependencyKey = "platform.policy_text"

	// DepHomepageImage is the first image discovered on the platform homepage,
	// downloaded and decoded, together with any embedded metadata.
	DepHomepageImage DependencyKey = "platform.homepage_image"

	// DepImageOCR is best-effort text recognition over the homepage image.
	//
	// OCR is an optional collaborator: if no OCR engine is available the
	// dependency resolves to an empty result, never an error.
	DepImageOCR DependencyKey = "platform.image_ocr"
)

// Priority returns the fetch priority for a dependency key (lower is higher priority).
func Priority(key DependencyKey) int {
	switch key {
	case DepPolicyText:
		return 0 // The compliance report cannot be produced without it (P0)
	case DepHomepageImage:
		return 1 // Needed before OCR can run (P1)
	default:
		return 2 // Everything else (P2)
	}
}
