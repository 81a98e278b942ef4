package data

// DependencyKey uniquely identifies a piece of fetched platform data.
type DependencyKey string

// DependencyRequest represents a request for a specific dependency with optional parameters.
type DependencyRequest struct {
	Key    DependencyKey
	Params map[string]string
}
