package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

type rule struct {
	category ErrorCategory
	patterns []string
}

// NewPatternMatcher creates a PatternMatcher with the built-in rules.
// Rules are tried in order; the first hit wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []rule{
			{CategoryCancelled, []string{"copy cancelled", "context canceled"}},
			{CategoryVerify, []string{"verify failed", "size mismatch", "sha256 mismatch"}},
			{CategoryDelete, []string{"move cleanup failed", "directory not empty", "cannot remove"}},
			{CategoryPermission, []string{"permission denied", "access denied", "operation not permitted"}},
			{CategoryDiskSpace, []string{"no space left on device", "disk full", "quota exceeded"}},
			{CategoryPath, []string{"no such file or directory", "file not found", "path does not exist"}},
			{CategoryCopy, []string{"short write", "input/output error", "i/o error"}},
		},
	}
}

type patternMatcher struct {
	rules []rule
}

// Match returns the category of the first rule with a pattern contained in
// errorMsg, ignoring case.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, r := range m.rules {
		for _, pattern := range r.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return r.category
			}
		}
	}

	return CategoryUnknown
}
