package shared

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/transfer-pilot/internal/transfer"
)

// TickInterval is how often the screen refreshes elapsed time and rate.
const TickInterval = 250 * time.Millisecond

// TransferDoneMsg is sent once Execute returns.
type TransferDoneMsg struct {
	Summary *transfer.Summary
	Err     error
}

// TickMsg is a message sent on each tick interval
type TickMsg time.Time

// TickCmd returns a command that sends a tick message after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
