package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codereap/dupscan/internal/suggest"
)

// SuggestCommand holds the flags for the suggest command.
type SuggestCommand struct {
	write    bool
	utilsDir string
}

// NewSuggestCommand creates and configures the suggest command.
func NewSuggestCommand() *cobra.Command {
	cmd := &SuggestCommand{}
	defaults := suggest.DefaultOptions(".")

	cobraCmd := &cobra.Command{
		Use:   "suggest [path]",
		Short: "Generate stub utility skeletons from the duplicate report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.write, "write", false, "write skeleton files (never overwrites)")
	cobraCmd.Flags().StringVar(&cmd.utilsDir, "utils-dir", defaults.UtilsDir, "skeleton output directory, relative to path")

	return cobraCmd
}

// Run executes the suggest command.
func (c *SuggestCommand) Run(_ *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	opts := suggest.DefaultOptions(root)
	opts.Write = c.write
	opts.UtilsDir = c.utilsDir

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return suggest.Run(opts, log)
}
