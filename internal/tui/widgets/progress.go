package widgets

import (
	"fmt"

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/tui/shared"
)

// NewProgressWidget creates a widget that displays transfer counters.
// Returns a closure that formats the latest progress snapshot.
func NewProgressWidget(getProgress func() transfer.Progress, pathWidth int) func() string {
	return func() string {
		p := getProgress()

		line := fmt.Sprintf("File %d / %d (%.1f%%)\n%s / %s",
			p.CurrentFile, p.TotalFiles, p.Percent,
			shared.FormatBytes(p.BytesDone), shared.FormatBytes(p.BytesTotal))

		if p.CurrentPath != "" && !p.Phase.Terminal() {
			line += "\n" + shared.RenderDim(shared.TruncatePath(p.CurrentPath, pathWidth))
		}

		return line
	}
}
