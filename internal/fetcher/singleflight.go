package fetcher

import (
	"golang.org/x/sync/singleflight"
)

// Group deduplicates concurrent fetches of the same flight key.
type Group struct {
	g singleflight.Group
}

func (g *Group) Do(key string, fn func() (interface{}, error)) (interface{}, error, bool) {
	v, err, shared := g.g.Do(key, fn)
	return v, err, shared
}
