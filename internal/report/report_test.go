package report

import (
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codereap/dupscan/internal/analyzer"
)

func mkGroup(category string, count, lines int, raw string) *analyzer.Group {
	g := &analyzer.Group{
		Fingerprint: analyzer.Fingerprint(raw),
		Count:       count,
		Lines:       lines,
		Impact:      count * lines,
		Category:    category,
		Suggestion:  "Extract to utility",
	}
	for i := 0; i < count; i++ {
		g.Blocks = append(g.Blocks, analyzer.Block{
			File:        "file.js",
			StartLine:   1 + i*100,
			EndLine:     lines + i*100,
			Size:        lines,
			Raw:         raw,
			Fingerprint: g.Fingerprint,
		})
	}
	return g
}

func TestBuildSummaryAndCategories(t *testing.T) {
	groups := []*analyzer.Group{
		mkGroup("api-call", 3, 10, "fetch('/api')"), // impact 30
		mkGroup("logging", 2, 10, "console.log(x)"), // impact 20
		mkGroup("api-call", 2, 5, "fetch('/other')"), // impact 10
	}

	r := Build(groups, nil, 200)

	assert.Equal(t, 3, r.Summary.TotalPatterns)
	assert.Equal(t, 60, r.Summary.TotalLines)
	assert.InDelta(t, 20.0, r.Summary.AvgDuplication, 0.001)

	// Categories sorted by impact descending.
	require.Len(t, r.Categories, 2)
	assert.Equal(t, Category{Type: "api-call", Count: 2, Impact: 40}, r.Categories[0])
	assert.Equal(t, Category{Type: "logging", Count: 1, Impact: 20}, r.Categories[1])

	// Duplicate order mirrors group order.
	impacts := []int{r.Duplicates[0].Impact, r.Duplicates[1].Impact, r.Duplicates[2].Impact}
	assert.Equal(t, []int{30, 20, 10}, impacts)
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, nil, 200)
	assert.Equal(t, 0, r.Summary.TotalPatterns)
	assert.Equal(t, 0.0, r.Summary.AvgDuplication)
	assert.Empty(t, r.Duplicates)
}

func TestBuildPreviewTruncation(t *testing.T) {
	raw := strings.Repeat("const aLongLine = somethingVerbose;\n", 30)
	r := Build([]*analyzer.Group{mkGroup("unknown", 2, 10, raw)}, nil, 120)

	require.Len(t, r.Duplicates, 1)
	assert.Len(t, r.Duplicates[0].Code, 120)
	assert.True(t, strings.HasSuffix(r.Duplicates[0].Code, "..."))
}

func TestBuildPreviewTruncationMultibyte(t *testing.T) {
	// Each é is two bytes, so a naive byte cut would land mid-rune.
	raw := strings.Repeat("const caféRésumé = 'déjà vu';\n", 30)
	r := Build([]*analyzer.Group{mkGroup("unknown", 2, 10, raw)}, nil, 120)

	require.Len(t, r.Duplicates, 1)
	code := r.Duplicates[0].Code
	assert.True(t, utf8.ValidString(code))
	assert.True(t, strings.HasSuffix(code, "..."))
	assert.LessOrEqual(t, len(code), 120)
}

func TestBuildCarriesTruncatedFiles(t *testing.T) {
	r := Build(nil, []string{"big.js"}, 200)
	assert.Equal(t, []string{"big.js"}, r.TruncatedFiles)
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := Build([]*analyzer.Group{mkGroup("logging", 2, 5, "console.log(x)")}, nil, 200)

	path, err := Write(r, dir)
	require.NoError(t, err)
	assert.Equal(t, Path(dir), path)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(Path(t.TempDir()))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
