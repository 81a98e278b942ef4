package flags

// Package flags defines canonical CLI flag names shared across the CLI and engine.
// Keeping these as constants helps avoid drift between Cobra flag wiring and other
// code paths that need to reference flags (e.g. report reproducibility command
// generation).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Targeting.PolicyURL, flags.FlagPolicyURL, "", "...")
//	arg := "--" + flags.FlagPolicyURL
const (
	// Targeting
	FlagPlatform     = "platform"
	FlagPolicyURL    = "policy-url"
	FlagHomepageURL  = "homepage-url"
	FlagPlatforms    = "platforms"
	FlagMaxPlatforms = "max-platforms"
	FlagDryRun       = "dry-run"

	// Rules
	FlagRules = "rules"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagEmit                = "emit"
	FlagNoConsole           = "no-console"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
	FlagVerbose     = "verbose"
	FlagNoOCR       = "no-ocr"
)
