// Package main provides the entry point for the dupscan CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codereap/dupscan/cmd/dupscan/commands"
)

// Populated via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dupscan",
		Short: "Detect near-duplicate code blocks and suggest refactorings",
		Long: `dupscan scans a source tree for textually near-duplicate code blocks,
ranks them by refactoring impact, and classifies each by heuristic pattern.

Commands:
  analyze   Scan a tree and write the duplicate report
  suggest   Turn the report into stub utility skeletons`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewSuggestCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "dupscan %s (commit: %s)\n", version, commit)
		},
	}
}
