package models

// PolicyDocument is the plain-text extraction of a platform's policy page.
//
// Text is markup-stripped and whitespace-collapsed; it may be empty if the
// page carried no extractable text.
type PolicyDocument struct {
	URL  string
	Text string
}
