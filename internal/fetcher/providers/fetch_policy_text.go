// Package providers registers the data fetchers for every dependency key.
// Importing it (blank import from the binary) wires the providers into the
// fetcher registry.
package providers

import (
	"context"
	"fmt"

	"synthcheck/internal/data"
	"synthcheck/internal/data/models"
	"synthcheck/internal/fetcher"
)

type policyTextFetcher struct{}

func (p *policyTextFetcher) Key() data.DependencyKey {
	return data.DepPolicyText
}

func (p *policyTextFetcher) ScopeURL(platform data.Platform) string {
	return platform.PolicyURL
}

func (p *policyTextFetcher) Fetch(ctx context.Context, platform data.Platform, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if platform.PolicyURL == "" {
		return nil, fmt.Errorf("platform %s has no policy URL", platform.Label())
	}

	if err := f.Budget().Acquire(ctx, 1); err != nil {
		return nil, err
	}

	resp, err := f.Client().Get(ctx, platform.PolicyURL)
	if resp != nil {
		f.Budget().UpdateFromResponse(resp)
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	text, err := fetcher.ExtractText(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse policy page %s: %w", platform.PolicyURL, err)
	}

	return &models.PolicyDocument{URL: platform.PolicyURL, Text: text}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&policyTextFetcher{})
}
