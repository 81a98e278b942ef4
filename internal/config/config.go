package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"synthcheck/internal/web"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect scan
	// behavior, keep the CLI flags in internal/cli/scan.go in sync.
	Targeting Targeting
	Rules     Rules
	Output    Output
	Runtime   Runtime
}

type Targeting struct {
	// Platform is the display name for a single-platform scan (see --platform).
	Platform string

	// PolicyURL is the platform's published policy page (see --policy-url).
	PolicyURL string

	// HomepageURL is the platform homepage, scanned for labeled images
	// (see --homepage-url). Optional; without it image analysis is skipped.
	HomepageURL string

	// PlatformsFile is a YAML file listing platforms for a batch scan
	// (see --platforms). Mutually exclusive with --policy-url.
	PlatformsFile string

	// MaxPlatforms limits how many platforms to scan (see --max-platforms).
	// 0 means unlimited.
	MaxPlatforms int

	// DryRun resolves the target set and prints the scan plan without
	// fetching anything (see --dry-run).
	DryRun bool
}

type Rules struct {
	// Selector selects which rules to run.
	// Empty means all rules; otherwise a comma-separated list of rule IDs
	// (see --rules).
	Selector string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by overall platform status
	// (see --console-filter-status).
	// Allowed values: compliant, partially compliant, non-compliant.
	ConsoleFilterStatus []string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --emit/--out/--report for machine-readable output.
	NoConsole bool
}

type Runtime struct {
	// Concurrency controls parallelism for platform processing (see --concurrency).
	// Must be >= 1.
	Concurrency int

	// Timeout is the global scan timeout for the run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// Verbose enables request tracing and fetch diagnostics (see --verbose).
	Verbose bool

	// NoOCR disables the external OCR tool even when it is installed
	// (see --no-ocr).
	NoOCR bool
}

func New() *Config {
	return &Config{
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: 4,
			Timeout:     10 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	// Targeting validation
	c.Targeting.Platform = strings.TrimSpace(c.Targeting.Platform)
	c.Targeting.PolicyURL = strings.TrimSpace(c.Targeting.PolicyURL)
	c.Targeting.HomepageURL = strings.TrimSpace(c.Targeting.HomepageURL)
	c.Targeting.PlatformsFile = strings.TrimSpace(c.Targeting.PlatformsFile)

	if c.Targeting.PolicyURL == "" && c.Targeting.PlatformsFile == "" {
		return errors.New("either --policy-url or --platforms must be provided")
	}
	if c.Targeting.PolicyURL != "" && c.Targeting.PlatformsFile != "" {
		return errors.New("--policy-url and --platforms are mutually exclusive")
	}
	if c.Targeting.PolicyURL != "" {
		if err := web.ValidateURL(c.Targeting.PolicyURL); err != nil {
			return fmt.Errorf("invalid --policy-url: %w", err)
		}
	}
	if c.Targeting.HomepageURL != "" {
		if c.Targeting.PolicyURL == "" {
			return errors.New("--homepage-url requires --policy-url")
		}
		if err := web.ValidateURL(c.Targeting.HomepageURL); err != nil {
			return fmt.Errorf("invalid --homepage-url: %w", err)
		}
	}
	if c.Targeting.MaxPlatforms < 0 {
		return errors.New("--max-platforms must be >= 0")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for i, status := range c.Output.ConsoleFilterStatus {
		v := normalizeEnumValue(status)
		switch v {
		case "compliant", "partially compliant", "non-compliant":
			c.Output.ConsoleFilterStatus[i] = v
		default:
			return fmt.Errorf("unsupported --console-filter-status: %s (must be one of: compliant, partially compliant, non-compliant)", status)
		}
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", emit)
		}
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
