package engine

import (
	"synthcheck/internal/config"
	"synthcheck/internal/data"
)

// ResolveTargets turns the targeting configuration into the concrete list of
// platforms to scan: either the single platform described by --policy-url /
// --homepage-url, or every entry of the --platforms file. The list is capped
// at --max-platforms when set.
func ResolveTargets(cfg *config.Config) ([]data.Platform, error) {
	var platforms []data.Platform

	if cfg.Targeting.PlatformsFile != "" {
		loaded, err := config.LoadPlatforms(cfg.Targeting.PlatformsFile)
		if err != nil {
			return nil, err
		}
		platforms = loaded
	} else {
		name := cfg.Targeting.Platform
		if name == "" {
			name = config.DefaultPlatformName
		}
		platforms = []data.Platform{{
			Name:        name,
			PolicyURL:   cfg.Targeting.PolicyURL,
			HomepageURL: cfg.Targeting.HomepageURL,
		}}
	}

	if max := cfg.Targeting.MaxPlatforms; max > 0 && len(platforms) > max {
		platforms = platforms[:max]
	}
	return platforms, nil
}
