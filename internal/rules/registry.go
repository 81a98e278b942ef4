package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Rule)
	mu       sync.RWMutex
)

func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	registry[r.ID()] = r
}

func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	var all []Rule
	for _, r := range registry {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID() < all[j].ID()
	})
	return all
}

// Resolve returns the rules matching a comma-separated ID selector.
// An empty selector selects every registered rule.
func Resolve(selector string) ([]Rule, error) {
	if selector == "" {
		return List(), nil
	}

	mu.RLock()
	defer mu.RUnlock()

	ids := strings.Split(selector, ",")
	var selected []Rule
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if r, ok := registry[id]; ok {
			selected = append(selected, r)
		} else {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
	}
	return selected, nil
}
