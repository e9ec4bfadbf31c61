package widgets

import "github.com/joe/transfer-pilot/internal/transfer"

// NewPhaseWidget creates a widget that displays the current phase message.
// cancelling overrides the engine phase until the engine acknowledges it.
func NewPhaseWidget(getPhase func() transfer.Phase, cancelling func() bool) func() string {
	return func() string {
		phase := getPhase()
		if cancelling() && !phase.Terminal() {
			return "Cancelling after the current chunk..."
		}

		switch phase {
		case transfer.PhaseScanning:
			return "Scanning picks..."
		case transfer.PhaseCopying:
			return "Copying files..."
		case transfer.PhaseVerifying:
			return "Verifying copy..."
		case transfer.PhaseDone:
			return "Transfer complete"
		case transfer.PhaseCancelled:
			return "Transfer cancelled"
		case transfer.PhaseError:
			return "Transfer failed"
		default:
			return "Starting..."
		}
	}
}
