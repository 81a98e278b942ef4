package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"synthcheck/internal/rules"
)

// ReportSink writes a human-readable Markdown report on Close, summarizing
// every platform scanned in the run.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	reports      []PlatformReport
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case PlatformReport:
		s.reports = append(s.reports, t)
	case Event:
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := make([]PlatformReport, len(s.reports))
	copy(reports, s.reports)
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].PlatformName < reports[j].PlatformName
	})

	var compliant, partial, non, failed int
	for _, r := range reports {
		if r.Report == nil {
			failed++
			continue
		}
		switch r.OverallStatus {
		case rules.OverallCompliant:
			compliant++
		case rules.OverallPartiallyCompliant:
			partial++
		default:
			non++
		}
	}

	var b strings.Builder
	b.WriteString("# Synthetic Content Compliance Report\n\n")

	b.WriteString("## Run Summary\n\n")
	b.WriteString(fmt.Sprintf("- Platforms scanned: %d\n", len(reports)))
	b.WriteString(fmt.Sprintf("- Compliant: %d\n", compliant))
	b.WriteString(fmt.Sprintf("- Partially compliant: %d\n", partial))
	b.WriteString(fmt.Sprintf("- Non-compliant: %d\n", non))
	if failed > 0 {
		b.WriteString(fmt.Sprintf("- Failed to scan: %d\n", failed))
	}
	if s.haveExitCode {
		b.WriteString(fmt.Sprintf("- Exit code: %d\n", s.exitCode))
	}
	b.WriteString("\n")

	for _, r := range reports {
		writePlatformSection(&b, r)
	}

	if _, err := s.file.WriteString(b.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

func writePlatformSection(b *strings.Builder, r PlatformReport) {
	b.WriteString(fmt.Sprintf("## %s\n\n", r.PlatformName))
	b.WriteString(fmt.Sprintf("- Policy: %s\n", r.PrivacyPolicyURL))
	if r.HomepageURL != "" {
		b.WriteString(fmt.Sprintf("- Homepage: %s\n", r.HomepageURL))
	}

	if r.Report == nil {
		b.WriteString(fmt.Sprintf("- Scan failed: %s\n\n", r.Error))
		return
	}

	b.WriteString(fmt.Sprintf("- Overall: **%.2f%% (%s)**\n\n", r.OverallScore, r.OverallStatus))

	b.WriteString("| Rule | Description | Score | Status |\n")
	b.WriteString("|------|-------------|-------|--------|\n")
	ids := make([]string, 0, len(r.Rules))
	for id := range r.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		res := r.Rules[id]
		b.WriteString(fmt.Sprintf("| %s | %s | %.1f | %s |\n", res.Rule, res.Description, res.Score, res.Status))
	}
	b.WriteString("\n")

	var recommendations []string
	for _, id := range ids {
		res := r.Rules[id]
		if res.Status != rules.StatusPass && res.Recommendation != "" {
			recommendations = append(recommendations, fmt.Sprintf("- **%s**: %s", res.Rule, res.Recommendation))
		}
	}
	if len(recommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		b.WriteString(strings.Join(recommendations, "\n"))
		b.WriteString("\n\n")
	}

	if r.ImageAnalysis != nil {
		b.WriteString("### Homepage Image\n\n")
		a := r.ImageAnalysis
		if !a.Success {
			b.WriteString(fmt.Sprintf("- Analysis failed: %s\n\n", a.Error))
			return
		}
		b.WriteString(fmt.Sprintf("- AI label detected: %t\n", a.HasLabel))
		b.WriteString(fmt.Sprintf("- Label coverage: %.2f%%\n", a.LabelCoverage))
		b.WriteString(fmt.Sprintf("- Meets 10%% coverage requirement: %t\n", a.CompliesWith10Percent))
		b.WriteString(fmt.Sprintf("- Images found on homepage: %d\n", r.TotalImagesFound))
		b.WriteString("\n")
	}
}
