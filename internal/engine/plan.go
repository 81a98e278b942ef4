package engine

import (
	"fmt"
	"sort"
	"strings"

	"synthcheck/internal/data"
	"synthcheck/internal/rules"
)

type ScanPlan struct {
	// PlatformPlans is keyed by planKey (lowercased policy URL).
	PlatformPlans map[string]*PlatformPlan
}

type PlatformPlan struct {
	Platform     data.Platform
	Dependencies map[data.DependencyKey]data.DependencyRequest
	Rules        []rules.Rule
}

// planKey identifies a platform within a scan plan. Policy URLs are the one
// field every target must carry, so they double as plan keys.
func planKey(p data.Platform) string {
	return strings.ToLower(strings.TrimSpace(p.PolicyURL))
}

func NewScanPlan() *ScanPlan {
	return &ScanPlan{
		PlatformPlans: make(map[string]*PlatformPlan),
	}
}

// AddPlatform plans the dependency fetches for one platform. The policy text
// is always fetched; homepage image discovery and OCR are planned only when
// the target declares a homepage URL.
func (p *ScanPlan) AddPlatform(platform data.Platform, selectedRules []rules.Rule) error {
	if p == nil {
		return fmt.Errorf("scan plan is nil")
	}
	if p.PlatformPlans == nil {
		return fmt.Errorf("scan plan is not initialized (PlatformPlans is nil); use NewScanPlan")
	}
	key := planKey(platform)
	if key == "" {
		return fmt.Errorf("platform %s has no policy URL", platform.Label())
	}
	if _, exists := p.PlatformPlans[key]; exists {
		return fmt.Errorf("duplicate platform target: %s", platform.PolicyURL)
	}

	pp := &PlatformPlan{
		Platform:     platform,
		Dependencies: make(map[data.DependencyKey]data.DependencyRequest),
		Rules:        selectedRules,
	}

	pp.Dependencies[data.DepPolicyText] = data.DependencyRequest{Key: data.DepPolicyText}
	if platform.HomepageURL != "" {
		pp.Dependencies[data.DepHomepageImage] = data.DependencyRequest{Key: data.DepHomepageImage}
		pp.Dependencies[data.DepImageOCR] = data.DependencyRequest{Key: data.DepImageOCR}
	}

	p.PlatformPlans[key] = pp
	return nil
}

// SortedDependencies returns the list of dependency keys sorted by priority (P0 first).
func (pp *PlatformPlan) SortedDependencies() []data.DependencyKey {
	keys := make([]data.DependencyKey, 0, len(pp.Dependencies))
	for k := range pp.Dependencies {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		p1 := data.Priority(keys[i])
		p2 := data.Priority(keys[j])
		if p1 != p2 {
			return p1 < p2
		}
		return keys[i] < keys[j] // Stable sort for same priority
	})

	return keys
}
