// Package errors turns raw per-file transfer failures into categorized,
// actionable errors.
//
// The manifest keeps the raw message; the enriched form is what the CLI and
// TUI show next to a failed row:
//
//	enricher := errors.NewEnricher()
//	enriched := enricher.Enrich(err, row.Source)
//	fmt.Println(errors.FormatSuggestions(enriched))
package errors

import "strings"

// Exported constants.
const (
	CategoryCancelled  ErrorCategory = "cancelled"
	CategoryCopy       ErrorCategory = "copy"
	CategoryDelete     ErrorCategory = "delete"
	CategoryDiskSpace  ErrorCategory = "disk_space"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryUnknown    ErrorCategory = "unknown"
	CategoryVerify     ErrorCategory = "verify"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions renders the suggestions of an ActionableError as an
// indented bullet list. Anything else yields "".
func FormatSuggestions(err error) string {
	actionable, ok := err.(ActionableError) //nolint:errorlint // Enrich returns the concrete value
	if !ok {
		return ""
	}

	lines := make([]string, 0, len(actionable.Suggestions()))
	for _, suggestion := range actionable.Suggestions() {
		lines = append(lines, "  • "+suggestion)
	}

	return strings.Join(lines, "\n")
}

type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

func (e *actionableError) AffectedPath() string { return e.affectedPath }
func (e *actionableError) Category() ErrorCategory { return e.category }
func (e *actionableError) Error() string { return e.originalError }
func (e *actionableError) OriginalError() string { return e.originalError }
func (e *actionableError) Suggestions() []string { return e.suggestions }
