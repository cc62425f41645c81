package analyzer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// sharedBlock returns 12 identical code lines, 12 tokens each, so any 10-line
// window inside it clears the token and character thresholds.
func sharedBlock() []string {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = fmt.Sprintf("const value%d = alpha + beta + gamma + delta + epsilon;", i)
	}
	return lines
}

func fillerLines(tag string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("let filler%s%d = %d;", tag, i, i)
	}
	return lines
}

func writeFixture(t *testing.T, dir, name string, lines []string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunTwoFileScenario(t *testing.T) {
	dir := t.TempDir()

	var fileA []string
	fileA = append(fileA, fillerLines("A", 3)...)
	fileA = append(fileA, sharedBlock()...)
	fileA = append(fileA, fillerLines("X", 3)...)
	writeFixture(t, dir, "a.js", fileA)

	var fileB []string
	fileB = append(fileB, fillerLines("B", 6)...)
	fileB = append(fileB, sharedBlock()...)
	fileB = append(fileB, fillerLines("Y", 2)...)
	writeFixture(t, dir, "b.js", fileB)

	cfg := Default()
	cfg.Root = dir
	cfg.BlockSizes = []int{10}

	groups, stats, err := Run(cfg, discardLogger())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, 2, g.Count)
	assert.Equal(t, 10, g.Lines)
	assert.Equal(t, 20, g.Impact)

	// Locations point at the start of the shared block in each file.
	require.Len(t, g.Blocks, 2)
	assert.Equal(t, filepath.Join(dir, "a.js"), g.Blocks[0].File)
	assert.Equal(t, 4, g.Blocks[0].StartLine)
	assert.Equal(t, 13, g.Blocks[0].EndLine)
	assert.Equal(t, filepath.Join(dir, "b.js"), g.Blocks[1].File)
	assert.Equal(t, 7, g.Blocks[1].StartLine)
	assert.Equal(t, 16, g.Blocks[1].EndLine)

	assert.Equal(t, 2, stats.FilesScanned)
	assert.Empty(t, stats.TruncatedFiles)
}

func TestRunSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()

	var fileA []string
	fileA = append(fileA, fillerLines("A", 3)...)
	fileA = append(fileA, sharedBlock()...)
	writeFixture(t, dir, "a.js", fileA)

	var fileB []string
	fileB = append(fileB, fillerLines("B", 5)...)
	fileB = append(fileB, sharedBlock()...)
	writeFixture(t, dir, "b.js", fileB)

	// A dangling symlink survives collection but fails to read.
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.js"), filepath.Join(dir, "broken.js")))

	cfg := Default()
	cfg.Root = dir
	cfg.BlockSizes = []int{10}

	groups, stats, err := Run(cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesFailed)
	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count)
}

func TestRunDeterministic(t *testing.T) {
	dir := t.TempDir()

	shared := sharedBlock()
	for i := 0; i < 4; i++ {
		var lines []string
		lines = append(lines, fillerLines(fmt.Sprintf("f%d", i), i+1)...)
		lines = append(lines, shared...)
		lines = append(lines, fillerLines(fmt.Sprintf("g%d", i), 2)...)
		writeFixture(t, dir, fmt.Sprintf("file%d.js", i), lines)
	}

	cfg := Default()
	cfg.Root = dir

	run := func() []byte {
		groups, _, err := Run(cfg, discardLogger())
		require.NoError(t, err)
		data, err := json.Marshal(groups)
		require.NoError(t, err)
		return data
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestRunMissingRoot(t *testing.T) {
	cfg := Default()
	cfg.Root = filepath.Join(t.TempDir(), "does-not-exist")

	_, _, err := Run(cfg, discardLogger())
	require.Error(t, err)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.MinTokens = 0

	_, _, err := Run(cfg, discardLogger())
	require.Error(t, err)
}

func TestRunClassifiesGroups(t *testing.T) {
	dir := t.TempDir()

	block := []string{
		"async function refreshOrders(customerId, start) {",
		"  const response = await fetch('/api/orders?customer=' + customerId);",
		"  const payload = await response.json();",
		"  const rows = payload.items.map(item => normalizeOrder(item, start));",
		"  const active = rows.filter(row => row.status !== 'archived');",
		"  updateOrderTable(active, customerId, start);",
		"  return { count: active.length, fetchedAt: start, customer: customerId };",
		"}",
	}
	writeFixture(t, dir, "orders.js", append(append(fillerLines("a", 2), block...), fillerLines("b", 2)...))
	writeFixture(t, dir, "reports.js", append(append(fillerLines("c", 5), block...), fillerLines("d", 2)...))

	cfg := Default()
	cfg.Root = dir
	cfg.BlockSizes = []int{8}
	cfg.MinTokens = 20

	groups, _, err := Run(cfg, discardLogger())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "async-function", groups[0].Category)
	assert.Equal(t, "Extract to async utility function", groups[0].Suggestion)
}
