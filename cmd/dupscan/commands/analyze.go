// Package commands holds the dupscan subcommands.
package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codereap/dupscan/internal/analyzer"
	"github.com/codereap/dupscan/internal/report"
)

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	extensions       []string
	excludeDirs      []string
	excludePatterns  []string
	blockSizes       []int
	minLines         int
	minTokens        int
	maxBlocksPerFile int
	top              int
}

// NewAnalyzeCommand creates and configures the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}
	defaults := analyzer.Default()

	cobraCmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Scan a source tree for duplicate blocks and write the report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringSliceVar(&cmd.extensions, "ext", defaults.Extensions, "file extensions to scan")
	cobraCmd.Flags().StringSliceVar(&cmd.excludeDirs, "exclude-dir", defaults.ExcludeDirs, "directory names to skip")
	cobraCmd.Flags().StringSliceVar(&cmd.excludePatterns, "exclude", nil, "glob patterns to skip (e.g. '**/*.gen.js')")
	cobraCmd.Flags().IntSliceVar(&cmd.blockSizes, "block-sizes", defaults.BlockSizes, "sliding window sizes in lines")
	cobraCmd.Flags().IntVar(&cmd.minLines, "min-lines", defaults.MinLines, "smallest block size allowed")
	cobraCmd.Flags().IntVar(&cmd.minTokens, "min-tokens", defaults.MinTokens, "minimum tokens per block")
	cobraCmd.Flags().IntVar(&cmd.maxBlocksPerFile, "max-blocks", defaults.MaxBlocksPerFile, "per-file block cap")
	cobraCmd.Flags().IntVar(&cmd.top, "top", defaults.Top, "groups to show in full detail")

	return cobraCmd
}

// Run executes the analyze command.
func (c *AnalyzeCommand) Run(_ *cobra.Command, args []string) error {
	start := time.Now()

	cfg := analyzer.Default()
	if len(args) == 1 {
		cfg.Root = args[0]
	}
	cfg.Extensions = c.extensions
	cfg.ExcludeDirs = c.excludeDirs
	cfg.ExcludePatterns = c.excludePatterns
	cfg.BlockSizes = c.blockSizes
	cfg.MinLines = c.minLines
	cfg.MinTokens = c.minTokens
	cfg.MaxBlocksPerFile = c.maxBlocksPerFile
	cfg.Top = c.top

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	groups, stats, err := analyzer.Run(cfg, log)
	if err != nil {
		return err
	}

	r := report.Build(groups, stats.TruncatedFiles, cfg.PreviewLen)
	path, err := report.Write(r, cfg.Root)
	if err != nil {
		return err
	}

	report.PrintScanStats(stats)
	report.PrintTopDuplicates(r, cfg.Top)
	report.PrintCategories(r)
	report.PrintHotspots(r, 5)
	report.PrintTotalSummary(r, path, time.Since(start))
	return nil
}
