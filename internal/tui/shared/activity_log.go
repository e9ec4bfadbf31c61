package shared

import (
	"strings"
)

// RenderActivityLog renders a titled list of entries, oldest first. If
// maxEntries > 0 only the most recent maxEntries are shown.
func RenderActivityLog(title string, entries []string, maxEntries int) string {
	var builder strings.Builder

	if title = strings.TrimSpace(title); title != "" {
		builder.WriteString(RenderLabel(title))
		builder.WriteString("\n")
	}

	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	for i, entry := range entries {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString("  ")
		builder.WriteString(entry)
	}

	return builder.String()
}
