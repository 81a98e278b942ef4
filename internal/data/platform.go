package data

// Platform identifies one scan target: a platform name plus the URLs of its
// published policy page and homepage.
type Platform struct {
	Name        string
	PolicyURL   string
	HomepageURL string
}

// Label returns a human-readable identifier for the platform, falling back to
// the policy URL when no name was supplied.
func (p Platform) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PolicyURL
}
