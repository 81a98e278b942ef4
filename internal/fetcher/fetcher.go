// Package fetcher retrieves the remote data the rule evaluators depend on:
// policy pages, homepage images, and OCR text. Every fetch goes through a
// shared request budget, a per-scan cache, and single-flight deduplication.
package fetcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"synthcheck/internal/data"
	"synthcheck/internal/web"
)

type Fetcher struct {
	client      *web.Client
	budget      *RequestBudget
	group       Group
	cache       *Cache
	ocrDisabled bool
}

type fetchChainKey struct{}

func NewFetcher(client *web.Client, budget *RequestBudget) *Fetcher {
	return &Fetcher{
		client: client,
		budget: budget,
		cache:  NewCache(),
	}
}

func (f *Fetcher) Budget() *RequestBudget {
	return f.budget
}

func (f *Fetcher) Client() *web.Client {
	return f.client
}

// DisableOCR turns off the OCR provider's external tool invocation; fetches
// of the OCR dependency then return empty text.
func (f *Fetcher) DisableOCR() {
	f.ocrDisabled = true
}

func (f *Fetcher) OCRDisabled() bool {
	return f.ocrDisabled
}

// Fetch resolves the provider for key and returns the dependency value for
// the platform. Results are cached for the lifetime of the Fetcher, and
// identical concurrent fetches are collapsed into one request. Providers may
// fetch their own dependencies through f; a cycle among them is an error.
func (f *Fetcher) Fetch(ctx context.Context, platform data.Platform, key data.DependencyKey, params map[string]string) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Fetch: nil context")
	}
	if f == nil {
		return nil, fmt.Errorf("Fetch: nil Fetcher")
	}
	if f.client == nil {
		return nil, fmt.Errorf("Fetch: nil web client (use NewFetcher)")
	}
	if f.budget == nil {
		return nil, fmt.Errorf("Fetch: nil request budget (use NewFetcher)")
	}
	if f.cache == nil {
		return nil, fmt.Errorf("Fetch: nil cache (use NewFetcher)")
	}
	if key == "" {
		return nil, fmt.Errorf("Fetch: empty dependency key")
	}

	provider, ok := ResolveDataFetcher(key)
	if !ok {
		return nil, fmt.Errorf("unsupported dependency key: %s", key)
	}

	flightKey, err := makeFlightKey(platform, provider, key, params)
	if err != nil {
		return nil, err
	}

	ctx, err = withFetchChain(ctx, flightKey)
	if err != nil {
		return nil, err
	}

	if val, ok := f.cache.Get(flightKey); ok {
		return val, nil
	}

	val, err, _ := f.group.Do(flightKey, func() (interface{}, error) {
		return provider.Fetch(ctx, platform, params, f)
	})

	if err == nil {
		f.cache.Set(flightKey, val)
	}
	return val, err
}

func withFetchChain(ctx context.Context, flightKey string) (context.Context, error) {
	chain := getFetchChain(ctx)
	for _, existing := range chain {
		if existing == flightKey {
			return nil, fmt.Errorf("Fetch: dependency cycle detected: %s -> %s", strings.Join(chain, " -> "), flightKey)
		}
	}

	updated := make([]string, 0, len(chain)+1)
	updated = append(updated, chain...)
	updated = append(updated, flightKey)
	return context.WithValue(ctx, fetchChainKey{}, updated), nil
}

func getFetchChain(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	chain, ok := ctx.Value(fetchChainKey{}).([]string)
	if !ok {
		return nil
	}
	return chain
}

// makeFlightKey builds the deterministic cache/dedup key for a fetch: the
// provider's scope URL, the dependency key, and the params in stable order.
func makeFlightKey(platform data.Platform, provider DataFetcher, key data.DependencyKey, params map[string]string) (string, error) {
	scope := provider.ScopeURL(platform)
	if scope == "" {
		return "", fmt.Errorf("Fetch: platform has no URL for dependency: %s", key)
	}
	return strings.ToLower(scope) + ":" + string(key) + ":" + stableParamsKey(params), nil
}

func stableParamsKey(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}
