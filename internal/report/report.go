// Package report builds, persists and renders the analysis artifact. The JSON
// shape here is the sole contract between `analyze` and `suggest`.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/codereap/dupscan/internal/analyzer"
)

// Location points at one occurrence of a duplicate block.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Duplicate is one ranked duplicate group in the artifact.
type Duplicate struct {
	Type        string     `json:"type"`
	Suggestion  string     `json:"suggestion"`
	Impact      int        `json:"impact"`
	Count       int        `json:"count"`
	Lines       int        `json:"lines"`
	Fingerprint string     `json:"fingerprint"`
	Locations   []Location `json:"locations"`
	Code        string     `json:"code"`
}

// Summary holds the run-level aggregates.
type Summary struct {
	TotalPatterns  int     `json:"totalPatterns"`
	TotalLines     int     `json:"totalLines"`
	AvgDuplication float64 `json:"avgDuplication"`
}

// Category aggregates count and impact per assigned pattern category.
type Category struct {
	Type   string `json:"type"`
	Count  int    `json:"count"`
	Impact int    `json:"impact"`
}

// Report is the terminal artifact of one analysis run.
type Report struct {
	Summary        Summary     `json:"summary"`
	Duplicates     []Duplicate `json:"duplicates"`
	Categories     []Category  `json:"categories"`
	TruncatedFiles []string    `json:"truncatedFiles,omitempty"`
}

const fileName = "report.json"

// Path returns the fixed artifact path for a scanned root.
func Path(root string) string {
	return filepath.Join(root, analyzer.ArtifactDir, fileName)
}

// Build aggregates the ranked, classified groups into a report. Group order is
// preserved; every group is included, with the code preview capped to
// previewLen characters.
func Build(groups []*analyzer.Group, truncatedFiles []string, previewLen int) *Report {
	r := &Report{
		Duplicates:     make([]Duplicate, 0, len(groups)),
		TruncatedFiles: truncatedFiles,
	}

	byCategory := make(map[string]*Category)
	for _, g := range groups {
		locs := make([]Location, len(g.Blocks))
		for i, b := range g.Blocks {
			locs[i] = Location{File: b.File, StartLine: b.StartLine, EndLine: b.EndLine}
		}
		r.Duplicates = append(r.Duplicates, Duplicate{
			Type:        g.Category,
			Suggestion:  g.Suggestion,
			Impact:      g.Impact,
			Count:       g.Count,
			Lines:       g.Lines,
			Fingerprint: g.Fingerprint,
			Locations:   locs,
			Code:        truncate(g.Blocks[0].Raw, previewLen),
		})

		r.Summary.TotalPatterns++
		r.Summary.TotalLines += g.Impact

		c, ok := byCategory[g.Category]
		if !ok {
			c = &Category{Type: g.Category}
			byCategory[g.Category] = c
		}
		c.Count++
		c.Impact += g.Impact
	}

	for _, c := range byCategory {
		r.Categories = append(r.Categories, *c)
	}
	sort.Slice(r.Categories, func(i, j int) bool {
		if r.Categories[i].Impact != r.Categories[j].Impact {
			return r.Categories[i].Impact > r.Categories[j].Impact
		}
		return r.Categories[i].Type < r.Categories[j].Type
	})

	if r.Summary.TotalPatterns > 0 {
		r.Summary.AvgDuplication = float64(r.Summary.TotalLines) / float64(r.Summary.TotalPatterns)
	}
	return r
}

// Write persists the report to its fixed path under root.
func Write(r *Report, root string) (string, error) {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Load reads a previously written report. The caller decides whether a
// missing artifact is fatal.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}

// truncate caps s to maxLen bytes, backing off to a rune boundary so the
// preview stays valid UTF-8.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
