// Package collector discovers the source files an analysis run will scan.
package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls file discovery.
type Options struct {
	// Extensions is the allow-list of file extensions, with leading dot.
	Extensions []string
	// ExcludeDirs is the deny-list of directory names pruned during the walk.
	ExcludeDirs []string
	// ExcludePatterns are doublestar globs matched against the root-relative
	// path; matching files are skipped.
	ExcludePatterns []string
}

// Collect walks root recursively and returns the paths to scan, in the
// deterministic order the walk visits them. A missing root is an error.
func Collect(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	deny := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		deny[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && deny[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasAllowedExt(path, opts.Extensions) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if matchesAny(opts.ExcludePatterns, filepath.ToSlash(rel)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func hasAllowedExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, allowed := range exts {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Also match bare-name patterns like "*.gen.js" against the basename.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
