package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synthcheck/internal/config"
	"synthcheck/internal/engine"
	"synthcheck/internal/flags"
	"synthcheck/internal/web"
)

var cfg = config.New()

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan platform policy pages for synthetic content disclosure compliance",
	Long: `Scan one or more platforms and score their published policies against the
synthetic content disclosure rules.

Synthcheck is scan-only: it fetches the policy page (and optionally the
homepage, for image label analysis) over plain HTTP and never mutates state.

Targeting:
  Scan a single platform with --policy-url (optionally --platform for the
  display name and --homepage-url for image label analysis), or a batch of
  platforms from a YAML file with --platforms.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown compliance report to a file
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, platform.started, platform.report, platform.finished,
	run.finished). Platform reports are represented as an Event with type
	"platform.report" carrying the full scored report.

Exit codes:
	0 = clean run, every platform compliant
	1 = at least one platform not fully compliant
	2 = partial failure (some platforms could not be scanned)
	3 = fatal error (scan did not run)

Examples:
  # Scan one platform
  synthcheck scan --platform "Example Social" --policy-url https://example.com/policy

  # Include homepage image label analysis
  synthcheck scan --policy-url https://example.com/policy --homepage-url https://example.com

  # Batch scan from a YAML file
  synthcheck scan --platforms platforms.yaml --report compliance.md

	# AI Agent: stream machine-readable events to stdout
	synthcheck scan --platforms platforms.yaml --no-console --emit ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)

		client := web.NewClient(web.WithVerbose(cfg.Runtime.Verbose))
		eng := engine.NewEngine(client)
		code := eng.Run(ctx, cfg)
		// os.Exit skips deferred calls, so release the context first.
		cancel()
		os.Exit(code)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// MAINTAINER NOTE: If you add/change/remove any scan-affecting flags here,
	// keep internal/config/config.go in sync.

	// Targeting
	scanCmd.Flags().StringVar(&cfg.Targeting.Platform, flags.FlagPlatform, "", "Display name for the scanned platform (default: Unknown Platform)")
	scanCmd.Flags().StringVar(&cfg.Targeting.PolicyURL, flags.FlagPolicyURL, "", "URL of the platform's published policy page")
	scanCmd.Flags().StringVar(&cfg.Targeting.HomepageURL, flags.FlagHomepageURL, "", "Platform homepage URL; enables image label analysis")
	scanCmd.Flags().StringVar(&cfg.Targeting.PlatformsFile, flags.FlagPlatforms, "", "YAML file listing platforms for a batch scan (mutually exclusive with --policy-url)")
	scanCmd.Flags().IntVar(&cfg.Targeting.MaxPlatforms, flags.FlagMaxPlatforms, 0, "Maximum number of platforms to scan (0 = unlimited)")
	scanCmd.Flags().BoolVar(&cfg.Targeting.DryRun, flags.FlagDryRun, false, "Resolve platforms and print the fetch plan without scanning")

	// Rules
	scanCmd.Flags().StringVar(&cfg.Rules.Selector, flags.FlagRules, "", "Comma-separated rule IDs to evaluate (empty = all rules)")

	// Output
	scanCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	scanCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by overall status (compliant, partially compliant, non-compliant). Comma-separated.")
	scanCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	scanCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	scanCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	scanCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	scanCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")

	// Runtime
	scanCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, 4, "Concurrent platform scans (default: 4)")
	scanCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 10m)")
	scanCmd.Flags().BoolVar(&cfg.Runtime.NoOCR, flags.FlagNoOCR, false, "Disable OCR over homepage images even when a tesseract binary is installed")
}
