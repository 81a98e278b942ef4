package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"synthcheck/internal/imagecheck"
	"synthcheck/internal/rules"
)

func TestReportSinkMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	sink, err := NewReportSink(path)
	if err != nil {
		t.Fatalf("NewReportSink: %v", err)
	}

	good := sampleReport("Alpha", 80, rules.OverallCompliant)
	bad := sampleReport("Beta", 20, rules.OverallNonCompliant)
	bad.ImageAnalysis = &imagecheck.Analysis{
		Success:       true,
		HasLabel:      true,
		LabelCoverage: 17,
	}
	bad.TotalImagesFound = 3

	if err := sink.Write(Event{Type: "run.started", Platforms: 2}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(good); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(bad); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(Event{Type: "run.finished", ExitCode: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	md := string(raw)

	for _, want := range []string{
		"# Synthetic Content Compliance Report",
		"Platforms scanned: 2",
		"Compliant: 1",
		"Non-compliant: 1",
		"Exit code: 1",
		"## Alpha",
		"## Beta",
		"| Rule | Description | Score | Status |",
		"Label coverage: 17.00%",
		"Images found on homepage: 3",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}

	// Platform sections are sorted by name.
	if strings.Index(md, "## Alpha") > strings.Index(md, "## Beta") {
		t.Fatal("platform sections not sorted")
	}
}

func TestReportSinkScanFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	sink, err := NewReportSink(path)
	if err != nil {
		t.Fatalf("NewReportSink: %v", err)
	}

	if err := sink.Write(PlatformReport{
		PlatformName:     "Broken",
		PrivacyPolicyURL: "https://broken.example.com/policy",
		Error:            "policy page unreachable",
	}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, _ := os.ReadFile(path)
	md := string(raw)
	if !strings.Contains(md, "Scan failed: policy page unreachable") {
		t.Fatalf("report missing scan failure:\n%s", md)
	}
	if !strings.Contains(md, "Failed to scan: 1") {
		t.Fatalf("run summary missing failure count:\n%s", md)
	}
}
