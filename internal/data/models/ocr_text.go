package models

// OCRText holds the text lines recognized in an image, one entry per
// non-empty line. An empty Lines slice is the normal result when no OCR
// engine is available.
type OCRText struct {
	Lines []string
}
