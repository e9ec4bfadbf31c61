package widgets

import (
	"fmt"
	"path/filepath"

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/tui/shared"
)

// FormatEntry renders one recorded manifest row for the activity log.
func FormatEntry(row transfer.ManifestRow) string {
	line := fmt.Sprintf("%-9s %s", row.Status, filepath.Base(row.Source))
	if row.Error != nil {
		line += ": " + *row.Error
	}

	return shared.StatusStyle(row.Status).Render(line)
}

// NewActivityLogWidget creates a widget that displays the most recent
// finished files.
func NewActivityLogWidget(getActivities func() []string) func() string {
	return func() string {
		activities := getActivities()
		if len(activities) == 0 {
			return ""
		}

		return shared.RenderActivityLog("Recent", activities, shared.RecentEntries)
	}
}
