// Package suggest consumes the analysis artifact and turns it into stub
// utility skeletons, one per duplicate category.
package suggest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/codereap/dupscan/internal/report"
)

// Options controls a suggestion run.
type Options struct {
	// Root is the directory that was analyzed.
	Root string
	// Write emits skeleton files under the utility directory. Existing files
	// are never overwritten.
	Write bool
	// UtilsDir is the fixed output directory, relative to Root.
	UtilsDir string
	// MaxParams caps the placeholder parameters synthesized per stub.
	MaxParams int
}

// DefaultOptions returns the options used when no flags override them.
func DefaultOptions(root string) Options {
	return Options{
		Root:      root,
		UtilsDir:  filepath.Join("src", "utils"),
		MaxParams: 3,
	}
}

// CategoryStub is one synthesized refactoring target.
type CategoryStub struct {
	Category   string
	Suggestion string
	Groups     int
	Impact     int
	FuncName   string
	Params     []string
	FileName   string
	Source     string
}

// Run loads the artifact, synthesizes one stub per category, renders a
// markdown summary to stdout, and optionally writes the skeleton files.
// A missing artifact is fatal for the invocation.
func Run(opts Options, log *slog.Logger) error {
	path := report.Path(opts.Root)
	r, err := report.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no analysis report at %s: run \"dupscan analyze\" first", path)
		}
		return err
	}

	stubs := BuildStubs(r, opts.MaxParams)
	renderSummary(r, stubs, opts)

	if !opts.Write {
		return nil
	}
	return writeSkeletons(stubs, opts, log)
}

// BuildStubs re-derives per-category groupings from the artifact and
// synthesizes a stub signature for each. The representative preview is the
// highest-impact duplicate of the category (artifact order is impact-ranked).
func BuildStubs(r *report.Report, maxParams int) []CategoryStub {
	type bucket struct {
		first      report.Duplicate
		groups     int
		impact     int
		suggestion string
	}
	byCategory := make(map[string]*bucket)
	var order []string

	for _, d := range r.Duplicates {
		b, ok := byCategory[d.Type]
		if !ok {
			b = &bucket{first: d, suggestion: d.Suggestion}
			byCategory[d.Type] = b
			order = append(order, d.Type)
		}
		b.groups++
		b.impact += d.Impact
	}

	stubs := make([]CategoryStub, 0, len(order))
	for _, category := range order {
		b := byCategory[category]
		funcName := camelCase(category) + "Util"
		params := identifierParams(b.first.Code, maxParams)
		stub := CategoryStub{
			Category:   category,
			Suggestion: b.suggestion,
			Groups:     b.groups,
			Impact:     b.impact,
			FuncName:   funcName,
			Params:     params,
			FileName:   camelCase(category) + "Utils.js",
		}
		stub.Source = renderSource(stub)
		stubs = append(stubs, stub)
	}
	return stubs
}

// jsKeywords are identifier-shaped tokens that never make useful parameters.
var jsKeywords = map[string]bool{
	"async": true, "await": true, "break": true, "case": true, "catch": true,
	"class": true, "const": true, "continue": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "from": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "let": true, "new": true,
	"null": true, "of": true, "return": true, "static": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true,
	"undefined": true, "var": true, "void": true, "while": true, "yield": true,
	"console": true, "window": true, "document": true, "Date": true, "Math": true,
	"JSON": true, "Promise": true, "Object": true, "Array": true, "String": true,
}

var identifierRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// identifierParams scans preview text for identifier-like tokens and keeps the
// first few distinct non-keyword ones as placeholder parameters.
func identifierParams(code string, max int) []string {
	seen := make(map[string]bool)
	var params []string
	for _, tok := range identifierRe.FindAllString(code, -1) {
		if jsKeywords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		params = append(params, tok)
		if len(params) >= max {
			break
		}
	}
	if len(params) == 0 {
		params = []string{"input"}
	}
	return params
}

func renderSource(s CategoryStub) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Refactoring stub for %s duplicates (%d groups, %d duplicated lines).\n",
		s.Category, s.Groups, s.Impact)
	fmt.Fprintf(&sb, "// %s.\n", s.Suggestion)
	fmt.Fprintf(&sb, "// See %s for every location.\n", filepath.Join(".dupscan", "report.json"))
	fmt.Fprintf(&sb, "export function %s(%s) {\n", s.FuncName, strings.Join(s.Params, ", "))
	sb.WriteString("  // TODO: consolidate the duplicated logic here.\n")
	sb.WriteString("}\n")
	return sb.String()
}

// renderSummary prints a markdown overview through glamour, falling back to
// the plain markdown when rendering fails (non-TTY, unsupported terminal).
func renderSummary(r *report.Report, stubs []CategoryStub, opts Options) {
	var sb strings.Builder
	sb.WriteString("# Refactoring suggestions\n\n")
	fmt.Fprintf(&sb, "%d duplicate groups, %d duplicated lines total.\n\n",
		r.Summary.TotalPatterns, r.Summary.TotalLines)

	for _, s := range stubs {
		fmt.Fprintf(&sb, "## %s\n\n", s.Category)
		fmt.Fprintf(&sb, "%s — %d groups, %d duplicated lines.\n\n", s.Suggestion, s.Groups, s.Impact)
		fmt.Fprintf(&sb, "Proposed stub (`%s`):\n\n", filepath.Join(opts.UtilsDir, s.FileName))
		sb.WriteString("```js\n")
		sb.WriteString(s.Source)
		sb.WriteString("```\n\n")
	}
	if len(stubs) > 0 && !opts.Write {
		sb.WriteString("Run with `--write` to emit the skeleton files.\n")
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(sb.String())
		return
	}
	out, err := renderer.Render(sb.String())
	if err != nil {
		fmt.Print(sb.String())
		return
	}
	fmt.Print(out)
}

// writeSkeletons emits one stub file per category into the fixed utility
// directory, skipping any path that already exists.
func writeSkeletons(stubs []CategoryStub, opts Options, log *slog.Logger) error {
	dir := filepath.Join(opts.Root, opts.UtilsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating utility directory: %w", err)
	}

	for _, s := range stubs {
		path := filepath.Join(dir, s.FileName)
		if _, err := os.Stat(path); err == nil {
			log.Warn("skeleton exists, not overwriting", "file", path)
			continue
		}
		if err := os.WriteFile(path, []byte(s.Source), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

// camelCase turns a kebab-case category like "async-function" into
// "asyncFunction".
func camelCase(category string) string {
	parts := strings.Split(category, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
