package shared

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// NewProgressModel creates a progress bar with the app colors and the given width.
func NewProgressModel(width int) progress.Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = width
	bar.ShowPercentage = false // rendered by the caller

	if !colorsDisabled {
		bar.EmptyColor = dimColorCode
		bar.FullColor = accentColorCode
	}

	return bar
}

// RenderASCIIProgress draws "[=====>    ] 45%" for a fraction in [0, 1].
// Out-of-range fractions are clamped.
func RenderASCIIProgress(fraction float64, width int) string {
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(fraction * float64(width))

	var cells string

	switch {
	case filled >= width:
		cells = strings.Repeat("=", width)
	case fraction > 0:
		head := max(filled-1, 0)
		cells = strings.Repeat("=", head) + ">" + strings.Repeat(" ", width-head-1)
	default:
		cells = strings.Repeat(" ", width)
	}

	return fmt.Sprintf("[%s] %d%%", cells, int(fraction*100)) //nolint:mnd // percentage
}

// RenderProgress uses the bubbles bar, or the ASCII fallback when colors are
// disabled (NO_COLOR, TERM=dumb).
func RenderProgress(model progress.Model, fraction float64) string {
	if colorsDisabled {
		return RenderASCIIProgress(fraction, model.Width)
	}

	return model.ViewAs(fraction)
}
