package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

type suggestionGenerator struct{}

// Generate returns suggestions for category, mentioning affectedPath when set.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	var suggestions []string

	switch category {
	case CategoryCancelled:
		suggestions = []string{
			"The run was stopped before this file finished",
			"Start a new run to transfer the remaining files",
		}
	case CategoryVerify:
		suggestions = []string{
			"The copy does not match the source; do not delete the original",
			"Check the destination drive for errors and retry the transfer",
			"Make sure nothing modified the source while it was being copied",
		}
	case CategoryDelete:
		suggestions = []string{
			"The file was copied and verified but the original could not be removed",
			"Delete the original by hand once you have checked the copy",
		}
		if affectedPath != "" {
			suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", affectedPath))
		}
	case CategoryPermission:
		suggestions = []string{"Ensure you can read the source and write to the destination"}
		if affectedPath != "" {
			suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", affectedPath))
		}
	case CategoryDiskSpace:
		suggestions = []string{
			"Free up space on the destination volume",
			"Run 'transfer-pilot preflight' to compare the selection with free space",
			"Check available space with 'df -h'",
		}
	case CategoryPath:
		suggestions = []string{"The file may have been moved or deleted after it was added"}
		if affectedPath != "" {
			suggestions = append(suggestions, "Check if the path exists: "+affectedPath)
		}
	case CategoryCopy:
		suggestions = []string{
			"Verify the source and destination media are functioning correctly",
			"Try the transfer again, this may be a transient I/O error",
		}
	case CategoryUnknown:
		fallthrough
	default:
		suggestions = []string{"Check the error message for more details"}
		if affectedPath != "" {
			suggestions = append(suggestions, "Verify the path is accessible: "+affectedPath)
		}
	}

	return suggestions
}
