package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"synthcheck/internal/data"
	"synthcheck/internal/web"
)

// DefaultPlatformName labels scan targets that carry no display name.
const DefaultPlatformName = "Unknown Platform"

// platformsFile mirrors the on-disk YAML schema for batch scans:
//
//	platforms:
//	  - name: Example Social
//	    policy_url: https://example.com/policy
//	    homepage_url: https://example.com
type platformsFile struct {
	Platforms []platformEntry `yaml:"platforms"`
}

type platformEntry struct {
	Name        string `yaml:"name"`
	PolicyURL   string `yaml:"policy_url"`
	HomepageURL string `yaml:"homepage_url"`
}

// LoadPlatforms reads a YAML platforms file and returns the scan targets it
// declares, in file order. Every entry must carry a valid policy_url.
func LoadPlatforms(path string) ([]data.Platform, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading platforms file: %w", err)
	}

	var file platformsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing platforms file %s: %w", path, err)
	}
	if len(file.Platforms) == 0 {
		return nil, fmt.Errorf("platforms file %s declares no platforms", path)
	}

	platforms := make([]data.Platform, 0, len(file.Platforms))
	for i, entry := range file.Platforms {
		policyURL := strings.TrimSpace(entry.PolicyURL)
		if policyURL == "" {
			return nil, fmt.Errorf("platforms file %s: entry %d is missing policy_url", path, i+1)
		}
		if err := web.ValidateURL(policyURL); err != nil {
			return nil, fmt.Errorf("platforms file %s: entry %d: invalid policy_url: %w", path, i+1, err)
		}
		homepageURL := strings.TrimSpace(entry.HomepageURL)
		if homepageURL != "" {
			if err := web.ValidateURL(homepageURL); err != nil {
				return nil, fmt.Errorf("platforms file %s: entry %d: invalid homepage_url: %w", path, i+1, err)
			}
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = DefaultPlatformName
		}
		platforms = append(platforms, data.Platform{
			Name:        name,
			PolicyURL:   policyURL,
			HomepageURL: homepageURL,
		})
	}
	return platforms, nil
}
