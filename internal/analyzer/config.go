package analyzer

import "fmt"

// Config holds every knob for one analysis run. It is constructed once by the
// caller and passed by value into each stage; no component reads ambient state.
type Config struct {
	// Root is the directory to scan.
	Root string
	// MinLines is the smallest block size the run is allowed to consider.
	// Every entry in BlockSizes must be >= MinLines.
	MinLines int
	// MinTokens is the minimum whitespace-delimited token count for a block.
	MinTokens int
	// MinChars is the minimum trimmed character count for a block. It acts as
	// a cheap pre-filter before tokenizing.
	MinChars int
	// BlockSizes are the sliding-window sizes, in lines, scanned ascending.
	BlockSizes []int
	// MaxBlocksPerFile caps how many blocks a single file may contribute,
	// counted across all window sizes in scan order.
	MaxBlocksPerFile int
	// Extensions is the file extension allow-list (with leading dot).
	Extensions []string
	// ExcludeDirs is the directory name deny-list, pruned during the walk.
	ExcludeDirs []string
	// ExcludePatterns are doublestar globs matched against root-relative paths.
	ExcludePatterns []string
	// PreviewLen caps the code preview stored per duplicate in the report.
	PreviewLen int
	// Top is how many groups the console view shows in full detail.
	Top int
}

// Default returns the configuration used when no flags override it.
func Default() Config {
	return Config{
		Root:             ".",
		MinLines:         5,
		MinTokens:        50,
		MinChars:         100,
		BlockSizes:       []int{5, 10, 15, 20},
		MaxBlocksPerFile: 1000,
		Extensions:       []string{".js", ".jsx", ".ts", ".tsx", ".vue", ".svelte", ".mjs", ".cjs"},
		ExcludeDirs:      []string{"node_modules", "dist", "build", "out", "coverage", ".git", ".next", ".nuxt", "vendor"},
		PreviewLen:       200,
		Top:              10,
	}
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}
	if c.MinLines < 1 {
		return fmt.Errorf("minLines must be >= 1, got %d", c.MinLines)
	}
	if c.MinTokens < 1 {
		return fmt.Errorf("minTokens must be >= 1, got %d", c.MinTokens)
	}
	if c.MaxBlocksPerFile < 1 {
		return fmt.Errorf("maxBlocksPerFile must be >= 1, got %d", c.MaxBlocksPerFile)
	}
	if len(c.BlockSizes) == 0 {
		return fmt.Errorf("at least one block size is required")
	}
	for _, size := range c.BlockSizes {
		if size < 1 {
			return fmt.Errorf("block sizes must be positive, got %d", size)
		}
		if size < c.MinLines {
			return fmt.Errorf("block size %d is below minLines %d", size, c.MinLines)
		}
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one file extension is required")
	}
	return nil
}
