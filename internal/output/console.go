package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"synthcheck/internal/imagecheck"
	"synthcheck/internal/rules"
)

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	reports         []PlatformReport // For JSON array output
	allowedStatuses map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[strings.ToLower(st)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	// Apply filtering if configured
	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(PlatformReport); ok && r.Report != nil {
			if !s.allowedStatuses[strings.ToLower(r.OverallStatus)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(PlatformReport)
		if !ok {
			// Ignore non-report events in JSON console mode.
			return nil
		}
		s.reports = append(s.reports, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case PlatformReport:
			if err := encoder.Encode(eventFromReport(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		r, ok := v.(PlatformReport)
		if !ok {
			// Ignore events in text mode.
			return nil
		}
		if err := s.writeText(r); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(r PlatformReport) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	if r.Report == nil {
		if err := printf("%s %s: %s\n", statusColor("danger").Sprint("[Error]"), r.PlatformName, r.Error); err != nil {
			return err
		}
		return nil
	}

	header := statusColor(r.StatusColor).Sprintf("[%s]", r.OverallStatus)
	if err := printf("%s %s (%.2f%%)\n", header, r.PlatformName, r.OverallScore); err != nil {
		return err
	}

	ids := make([]string, 0, len(r.Rules))
	for id := range r.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		res := r.Rules[id]
		if err := printf("  %s %s: %s (%.1f)\n", resultColor(res.Status).Sprintf("[%s]", res.Status), res.Rule, res.Description, res.Score); err != nil {
			return err
		}
	}

	if r.ImageAnalysis != nil {
		if err := printf("  %s\n", imageSummaryLine(r.ImageAnalysis)); err != nil {
			return err
		}
	}

	return printf("  %s\n", r.Summary)
}

func imageSummaryLine(a *imagecheck.Analysis) string {
	if !a.Success {
		return fmt.Sprintf("Image: analysis failed (%s)", a.Error)
	}
	label := "no"
	if a.HasLabel {
		label = "yes"
	}
	meets := "no"
	if a.CompliesWith10Percent {
		meets = "yes"
	}
	return fmt.Sprintf("Image: label=%s coverage=%.2f%% meets 10%% rule=%s", label, a.LabelCoverage, meets)
}

func statusColor(name string) *color.Color {
	switch name {
	case "success":
		return color.New(color.FgGreen)
	case "warning":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func resultColor(status rules.Status) *color.Color {
	switch status {
	case rules.StatusPass:
		return color.New(color.FgGreen)
	case rules.StatusPartial:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.reports); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
