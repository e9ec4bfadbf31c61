package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/tui/shared"
)

// Run executes req on engine behind the progress screen. observer, if not
// nil, receives every event synchronously and is never dropped. The
// request's cancel token is created if missing.
func Run(
	engine *transfer.Engine,
	req transfer.Request,
	observer transfer.EventEmitter,
	opts ...tea.ProgramOption,
) (*transfer.Summary, error) {
	if req.Cancel == nil {
		req.Cancel = transfer.NewCancelToken()
	}

	bridge := shared.NewEventBridge()
	engine.SetEventEmitter(transfer.FanOut(observer, bridge))

	start := func() tea.Msg {
		summary, err := engine.Execute(req)
		bridge.Close()

		return shared.TransferDoneMsg{Summary: summary, Err: err}
	}

	model := NewModel(req.Cancel, bridge, start)

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		req.Cancel.Cancel()

		return nil, fmt.Errorf("failed to run progress screen: %w", err)
	}

	finished, ok := final.(*Model)
	if !ok || !finished.Done() {
		return nil, fmt.Errorf("progress screen exited before the transfer finished: %w", transfer.ErrCancelled)
	}

	return finished.Summary()
}
