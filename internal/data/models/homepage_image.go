package models

import (
	"image"

	"synthcheck/internal/imagecheck"
)

// HomepageImage is the first image discovered on a platform homepage,
// downloaded and decoded for label analysis.
//
// Found records how many image URLs were discovered on the page in total.
// Image is nil when the page carried no images; Raw holds the undecoded
// bytes so downstream consumers (OCR) can re-read the original file.
type HomepageImage struct {
	PageURL  string
	ImageURL string
	Found    int
	Raw      []byte
	Image    image.Image
	Metadata imagecheck.Metadata
}
