package transfer

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFilter decides which files found inside a folder pick are scanned.
type FileFilter interface {
	// ShouldInclude receives the path relative to the picked folder.
	ShouldInclude(relativePath string) bool
}

// ExcludeFilter drops files matching any of its glob patterns.
// Matching is case-insensitive and uses doublestar syntax. A pattern matches
// if it matches either the whole relative path or just the file name, so
// "*.tmp" excludes temp files at any depth.
type ExcludeFilter struct {
	normalizedPatterns []string
}

// NewExcludeFilter validates and stores the patterns. No patterns means
// every file is included.
func NewExcludeFilter(patterns ...string) (*ExcludeFilter, error) {
	normalized := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		lower := strings.ToLower(filepath.ToSlash(pattern))
		if !doublestar.ValidatePattern(lower) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		normalized = append(normalized, lower)
	}

	return &ExcludeFilter{normalizedPatterns: normalized}, nil
}

// ShouldInclude returns false if any pattern matches relativePath.
func (f *ExcludeFilter) ShouldInclude(relativePath string) bool {
	if f == nil || len(f.normalizedPatterns) == 0 {
		return true
	}

	normalizedPath := strings.ToLower(filepath.ToSlash(relativePath))
	name := path.Base(normalizedPath)

	for _, pattern := range f.normalizedPatterns {
		if doublestar.MatchUnvalidated(pattern, normalizedPath) || doublestar.MatchUnvalidated(pattern, name) {
			return false
		}
	}

	return true
}

// Patterns returns the normalized patterns.
func (f *ExcludeFilter) Patterns() []string {
	return append([]string(nil), f.normalizedPatterns...)
}
