package shared

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
)

// FormatBytes formats a byte count with binary units (e.g. "1.5MiB").
func FormatBytes(n uint64) string {
	return units.BytesSize(float64(n))
}

// FormatDuration formats duration into human-readable format (e.g., "2m 30s")
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// FormatRate formats bytes over elapsed as a per-second rate ("12MiB/s").
// Anything under a second of elapsed time yields "-".
func FormatRate(bytes uint64, elapsed time.Duration) string {
	if elapsed < time.Second {
		return "-"
	}

	return units.BytesSize(float64(bytes)/elapsed.Seconds()) + "/s"
}

// TruncatePath shortens p to at most width runes by eliding the middle.
func TruncatePath(p string, width int) string {
	const ellipsis = "..."

	runes := []rune(p)
	if width <= len(ellipsis) || len(runes) <= width {
		return p
	}

	keep := width - len(ellipsis)
	head := keep / 2 //nolint:mnd // split evenly
	tail := keep - head

	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
