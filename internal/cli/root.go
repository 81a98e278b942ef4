package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synthcheck/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "synthcheck",
	Short: "Check platform policies for synthetic content disclosure compliance",
	Long: `Synthcheck scans platform policy pages and scores them against the disclosure
obligations for synthetically generated content under the IT Rules, 2021.

Synthcheck is scan-only: it fetches published pages, evaluates them, and
reports scores. It never submits anything to the scanned platforms.

Examples:
	# Show available commands and global flags
	synthcheck --help

	# Scan one platform's policy page
	synthcheck scan --policy-url https://example.com/policy

	# List rules
	synthcheck rules list

	# Print build info
	synthcheck version

Output:
	By default, commands write human-readable output to stdout.
	Some commands support structured output via emitter flags (see each command's --help).`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every HTTP request and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
