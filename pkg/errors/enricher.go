package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	// "open /path/to/file: permission denied" and friends.
	pathPattern = regexp.MustCompile(`\b\w+\s+((?:[./]|[A-Za-z]:[\\/])[^\s:]+):`)
)

type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich categorizes err and attaches suggestions. ActionableErrors pass
// through unchanged. When affectedPath is empty it is pulled from the
// message if one is present.
func (e *enricher) Enrich(err error, affectedPath string) error {
	if err == nil {
		return nil
	}

	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	category := e.matcher.Match(errMsg)

	return NewActionableError(errMsg, category, e.generator.Generate(category, affectedPath), affectedPath)
}

func extractPath(errorMsg string) string {
	if matches := pathPattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return ""
}
