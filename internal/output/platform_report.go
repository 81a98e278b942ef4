// Package output routes scan results to sinks: console (text, json, ndjson),
// extra emit streams, files, and Markdown reports.
package output

import (
	"synthcheck/internal/imagecheck"
	"synthcheck/internal/rules"
)

// PlatformReport is the complete scan result for one platform: the rule
// compliance report plus homepage image analysis. Field names are part of
// the wire format and must not change.
type PlatformReport struct {
	PlatformName     string `json:"platform_name"`
	PrivacyPolicyURL string `json:"privacy_policy_url"`
	HomepageURL      string `json:"homepage_url,omitempty"`

	*rules.Report

	ImageAnalysis    *imagecheck.Analysis `json:"image_analysis,omitempty"`
	TotalImagesFound int                  `json:"total_images_found"`

	// Error is set when the platform could not be scanned at all (policy page
	// unreachable); the embedded report is nil in that case.
	Error string `json:"error,omitempty"`
}
