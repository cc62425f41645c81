// Package analyzer implements the duplicate-block detection engine: block
// extraction, fingerprinting, grouping, ranking and classification.
package analyzer

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codereap/dupscan/internal/collector"
)

// ArtifactDir is the fixed directory, under the scanned root, that holds the
// report and the ignore list.
const ArtifactDir = ".dupscan"

// Stats summarizes one analysis run for the console view.
type Stats struct {
	FilesScanned   int
	FilesFailed    int
	TotalLines     int
	TotalBytes     int64
	BlockCount     int
	TruncatedFiles []string
	ReadTime       time.Duration
	DetectTime     time.Duration
}

// Run executes the whole pipeline: discover files, read them, extract blocks,
// group by fingerprint, classify. Groups come back ranked by impact.
//
// File reads fan out with bounded concurrency; the results land in a slice
// indexed by discovery order, so block emission stays in canonical order
// (file-list order outer, in-file scan order inner) and grouping tie-breaks
// stay deterministic.
func Run(cfg Config, log *slog.Logger) ([]*Group, *Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	files, err := collector.Collect(cfg.Root, collector.Options{
		Extensions:      cfg.Extensions,
		ExcludeDirs:     cfg.ExcludeDirs,
		ExcludePatterns: cfg.ExcludePatterns,
	})
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}

	readStart := time.Now()
	contents := readFiles(files, log, stats)
	stats.ReadTime = time.Since(readStart)

	ignored, err := LoadIgnored(cfg.Root)
	if err != nil {
		log.Warn("could not load ignore list", "error", err)
	}

	detectStart := time.Now()
	var blocks []Block
	for i, content := range contents {
		if content == nil {
			continue
		}
		stats.FilesScanned++
		stats.TotalBytes += int64(len(*content))
		stats.TotalLines += countLines(*content)

		fileBlocks, truncated := ExtractBlocks(files[i], *content, cfg)
		blocks = append(blocks, fileBlocks...)
		if truncated {
			stats.TruncatedFiles = append(stats.TruncatedFiles, files[i])
		}
	}
	stats.BlockCount = len(blocks)

	groups := GroupBlocks(blocks, ignored)
	for _, g := range groups {
		g.Category, g.Suggestion = Classify(g.Blocks[0].Raw)
	}
	stats.DetectTime = time.Since(detectStart)

	return groups, stats, nil
}

// readFiles reads every file with bounded concurrency. Unreadable files are
// logged and skipped (nil entry); they contribute zero blocks and never abort
// the run.
func readFiles(files []string, log *slog.Logger, stats *Stats) []*string {
	contents := make([]*string, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Warn("skipping unreadable file", "file", path, "error", err)
				return nil
			}
			content := string(data)
			contents[i] = &content
			return nil
		})
	}
	// Workers never return errors; failures are skip-and-continue.
	g.Wait()

	for _, c := range contents {
		if c == nil {
			stats.FilesFailed++
		}
	}
	return contents
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			n++
		}
	}
	return n
}
