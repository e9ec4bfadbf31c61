package widgets

import (
	"fmt"
	"time"

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/tui/shared"
)

// NewSummaryWidget creates a widget that displays the run summary, or the
// fatal error if Execute failed.
func NewSummaryWidget(summary *transfer.Summary, err error) func() string {
	return func() string {
		if err != nil {
			return shared.RenderError(fmt.Sprintf("Error: %v", err))
		}

		if summary == nil {
			return "No summary available"
		}

		title := shared.RenderSuccess("Transfer complete!")
		if summary.Cancelled {
			title = shared.RenderWarning("Transfer cancelled")
		}

		elapsed := time.Duration(summary.DurationMS) * time.Millisecond //nolint:gosec // bounded run duration

		return fmt.Sprintf("%s\n\nCopied: %d  Moved: %d  Skipped: %d  Errors: %d\nSize: %s\nTime elapsed: %s\nSession: %s",
			title,
			summary.CopiedFiles, summary.MovedFiles, summary.SkippedFiles, summary.ErrorFiles,
			shared.FormatBytes(summary.TotalBytes),
			shared.FormatDuration(elapsed),
			summary.OutputSessionDir)
	}
}
