package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/codereap/dupscan/internal/analyzer"
)

// Theme defines the color scheme for console output.
type Theme struct {
	Impact   lipgloss.Style
	Category lipgloss.Style
	Location lipgloss.Style
	LineNum  lipgloss.Style
	Summary  lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultTheme is the default color scheme.
var DefaultTheme = Theme{
	Impact:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	Category: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	Location: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	LineNum:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	Summary:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
	Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var theme = DefaultTheme

// PrintScanStats prints the read/detect phase summary.
func PrintScanStats(stats *analyzer.Stats) {
	fmt.Printf("Scanned %s files (%s lines, %s) in %s\n",
		theme.Summary.Render(humanize.Comma(int64(stats.FilesScanned))),
		humanize.Comma(int64(stats.TotalLines)),
		humanize.Bytes(uint64(stats.TotalBytes)),
		stats.ReadTime.Round(time.Millisecond))
	if stats.FilesFailed > 0 {
		fmt.Printf("Skipped %d unreadable files\n", stats.FilesFailed)
	}
	fmt.Printf("Extracted %s candidate blocks in %s\n",
		humanize.Comma(int64(stats.BlockCount)),
		stats.DetectTime.Round(time.Millisecond))
	if len(stats.TruncatedFiles) > 0 {
		fmt.Printf("%s\n", theme.Dim.Render(fmt.Sprintf(
			"Note: %d files hit the per-file block cap; their coverage is partial.", len(stats.TruncatedFiles))))
	}
}

// PrintTopDuplicates prints the top-N duplicate groups in full detail:
// category, impact breakdown, every location, and a short preview.
func PrintTopDuplicates(r *Report, top int) {
	if len(r.Duplicates) < top {
		top = len(r.Duplicates)
	}
	fmt.Printf("\nFound %s duplicate groups (showing top %d by impact)\n",
		theme.Summary.Render(fmt.Sprintf("%d", r.Summary.TotalPatterns)), top)

	for i, d := range r.Duplicates[:top] {
		fmt.Printf("\n%s %s %s %s\n",
			theme.Impact.Render(fmt.Sprintf("#%d Impact %d", i+1, d.Impact)),
			theme.Dim.Render(fmt.Sprintf("(%d blocks x %d lines)", d.Count, d.Lines)),
			theme.Category.Render(d.Type),
			theme.Dim.Render("- "+d.Suggestion))
		for _, loc := range d.Locations {
			fmt.Printf("  %s%s%s\n",
				theme.Location.Render(loc.File),
				theme.Dim.Render(":"),
				theme.LineNum.Render(fmt.Sprintf("%d-%d", loc.StartLine, loc.EndLine)))
		}
		fmt.Printf("  %s\n", theme.Dim.Render(previewLine(d.Code)))
	}
}

// PrintCategories prints the per-category aggregates.
func PrintCategories(r *Report) {
	if len(r.Categories) == 0 {
		return
	}
	fmt.Printf("\n%s\n", theme.Summary.Render("By category (groups / duplicated lines):"))
	for _, c := range r.Categories {
		fmt.Printf("  %s %s\n",
			theme.LineNum.Render(fmt.Sprintf("%4d / %5d", c.Count, c.Impact)),
			theme.Category.Render(c.Type))
	}
}

// PrintHotspots prints the files with the most duplicated lines.
func PrintHotspots(r *Report, top int) {
	fileDupLines := make(map[string]int)
	for _, d := range r.Duplicates {
		for _, loc := range d.Locations {
			fileDupLines[loc.File] += d.Lines
		}
	}
	if len(fileDupLines) == 0 {
		return
	}

	type hotspot struct {
		file  string
		lines int
	}
	hotspots := make([]hotspot, 0, len(fileDupLines))
	for f, lines := range fileDupLines {
		hotspots = append(hotspots, hotspot{f, lines})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].lines != hotspots[j].lines {
			return hotspots[i].lines > hotspots[j].lines
		}
		return hotspots[i].file < hotspots[j].file
	})
	if len(hotspots) < top {
		top = len(hotspots)
	}

	fmt.Printf("\n%s\n", theme.Summary.Render("Duplication hotspots (lines):"))
	for _, h := range hotspots[:top] {
		fmt.Printf("  %s %s\n",
			theme.LineNum.Render(fmt.Sprintf("%4d", h.lines)),
			theme.Location.Render(h.file))
	}
}

// PrintTotalSummary prints the final summary line.
func PrintTotalSummary(r *Report, path string, elapsed time.Duration) {
	fmt.Printf("\nTotal: %s duplicate groups, %s duplicated lines (avg %.1f per group) in %s\n",
		theme.Summary.Render(fmt.Sprintf("%d", r.Summary.TotalPatterns)),
		theme.Summary.Render(humanize.Comma(int64(r.Summary.TotalLines))),
		r.Summary.AvgDuplication,
		theme.Summary.Render(elapsed.Round(time.Millisecond).String()))
	fmt.Printf("Report written to: %s\n", theme.Location.Render(path))
}

// previewLine flattens a code preview to a single dimmed line, cutting on a
// rune boundary.
func previewLine(code string) string {
	flat := strings.Join(strings.Fields(code), " ")
	if len(flat) <= 100 {
		return flat
	}
	cut := 97
	for cut > 0 && !utf8.RuneStart(flat[cut]) {
		cut--
	}
	return flat[:cut] + "..."
}
