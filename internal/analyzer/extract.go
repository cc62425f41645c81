package analyzer

import (
	"sort"
	"strings"
)

// Block is one sliding-window candidate: a contiguous run of source lines
// from a single file, immutable once created.
type Block struct {
	File        string
	StartLine   int // 1-based, inclusive
	EndLine     int // 1-based, inclusive
	Size        int // window size in lines
	Raw         string
	Tokens      int // whitespace-delimited word count of the trimmed raw text
	Fingerprint string
}

// ExtractBlocks slides each configured window size over the file's lines and
// returns every block that survives the filters, plus whether extraction was
// cut short by the per-file cap.
//
// Scan order is sizes ascending, start line ascending. The cap counts blocks
// across all sizes; once reached, the remainder of the file is skipped.
func ExtractBlocks(path, content string, cfg Config) ([]Block, bool) {
	lines := strings.Split(content, "\n")

	sizes := append([]int(nil), cfg.BlockSizes...)
	sort.Ints(sizes)

	var blocks []Block
	for si, size := range sizes {
		for i := 0; i < len(lines)-size; i++ {
			window := lines[i : i+size]
			raw := strings.Join(window, "\n")

			trimmed := strings.TrimSpace(raw)
			if len(trimmed) < cfg.MinChars {
				continue
			}
			tokens := len(strings.Fields(trimmed))
			if tokens < cfg.MinTokens {
				continue
			}
			if countCodeLines(window)*2 < size {
				continue
			}

			blocks = append(blocks, Block{
				File:        path,
				StartLine:   i + 1,
				EndLine:     i + size,
				Size:        size,
				Raw:         raw,
				Tokens:      tokens,
				Fingerprint: Fingerprint(raw),
			})
			if len(blocks) >= cfg.MaxBlocksPerFile {
				return blocks, moreCandidates(len(lines), sizes, si, i)
			}
		}
	}
	return blocks, false
}

// moreCandidates reports whether any window position remained after the cap
// hit at sizes[si], start i. A file that yields exactly the cap on its final
// window was not truncated.
func moreCandidates(lineCount int, sizes []int, si, i int) bool {
	if i+1 < lineCount-sizes[si] {
		return true
	}
	for _, size := range sizes[si+1:] {
		if lineCount-size > 0 {
			return true
		}
	}
	return false
}

// countCodeLines counts the lines that are neither comments, block-comment
// continuations, nor import/include statements. Blocks dominated by the rest
// are rejected by the code-line ratio filter.
func countCodeLines(lines []string) int {
	code := 0
	for _, line := range lines {
		if !isCommentLine(line) && !isImportLine(line) {
			code++
		}
	}
	return code
}

func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//") ||
		strings.HasPrefix(t, "/*") ||
		strings.HasPrefix(t, "*")
}

func isImportLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "import") ||
		strings.HasPrefix(t, "#include") ||
		(strings.HasPrefix(t, "from ") && strings.Contains(t, " import "))
}
