// Package tui shows a live progress screen for one transfer run.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/tui/shared"
	"github.com/joe/transfer-pilot/internal/tui/widgets"
)

// pathMargin is subtracted from the terminal width when truncating paths.
const pathMargin = 8

// Model is the progress screen. It owns no transfer state: everything it
// shows comes from engine events and the final TransferDoneMsg.
type Model struct {
	cancel *transfer.CancelToken
	bridge *shared.EventBridge
	start  tea.Cmd

	progress   transfer.Progress
	recent     []string
	cancelling bool
	done       bool
	summary    *transfer.Summary
	err        error

	startedAt time.Time
	now       time.Time

	bar   progress.Model
	width int
}

// NewModel creates the screen. start runs the transfer and must end with a
// TransferDoneMsg; cancel is set when the user presses ctrl+c.
func NewModel(cancel *transfer.CancelToken, bridge *shared.EventBridge, start tea.Cmd) *Model {
	now := time.Now()

	return &Model{
		cancel:    cancel,
		bridge:    bridge,
		start:     start,
		startedAt: now,
		now:       now,
		bar:       shared.NewProgressModel(shared.ProgressBarWidth),
		width:     shared.ProgressBarWidth + pathMargin,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.start, m.bridge.ListenCmd(), shared.TickCmd())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(1, min(msg.Width-pathMargin, shared.MaxProgressBarWidth))

		return m, nil
	case shared.EngineEventMsg:
		m.handleEvent(msg.Event)

		return m, m.bridge.ListenCmd()
	case shared.TickMsg:
		m.now = time.Time(msg)
		if m.done {
			return m, nil
		}

		return m, shared.TickCmd()
	case shared.TransferDoneMsg:
		m.done = true
		m.summary = msg.Summary
		m.err = msg.Err

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case shared.KeyCtrlC, "esc", "q":
		if m.done {
			return m, tea.Quit
		}

		m.cancelling = true
		m.cancel.Cancel()
	}

	return m, nil
}

func (m *Model) handleEvent(event transfer.Event) {
	switch ev := event.(type) {
	case transfer.Progress:
		m.progress = ev
	case transfer.EntryRecorded:
		m.recent = append(m.recent, widgets.FormatEntry(ev.Row))
		if len(m.recent) > shared.RecentEntries {
			m.recent = m.recent[len(m.recent)-shared.RecentEntries:]
		}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.done {
		return shared.RenderBox(widgets.NewSummaryWidget(m.summary, m.err)()) + "\n"
	}

	getProgress := func() transfer.Progress { return m.progress }
	getPhase := func() transfer.Phase { return m.progress.Phase }
	cancelling := func() bool { return m.cancelling }

	sections := []string{
		shared.RenderTitle("TransferPilot"),
		shared.RenderLabel(widgets.NewPhaseWidget(getPhase, cancelling)()),
		shared.RenderProgress(m.bar, m.progress.Percent/100), //nolint:mnd // percent to fraction
		widgets.NewProgressWidget(getProgress, m.width-pathMargin)(),
		shared.RenderDim("Elapsed " + shared.FormatDuration(m.now.Sub(m.startedAt)) +
			"  Rate " + shared.FormatRate(m.progress.BytesDone, m.now.Sub(m.startedAt))),
	}

	if log := widgets.NewActivityLogWidget(func() []string { return m.recent })(); log != "" {
		sections = append(sections, log)
	}

	if !m.cancelling {
		sections = append(sections, shared.RenderDim("ctrl+c to cancel"))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// Summary returns what Execute returned once the run is over.
func (m *Model) Summary() (*transfer.Summary, error) {
	return m.summary, m.err
}

// Done reports whether the TransferDoneMsg has arrived.
func (m *Model) Done() bool {
	return m.done
}

// Cancelling reports whether the user asked to stop.
func (m *Model) Cancelling() bool {
	return m.cancelling
}

// Progress returns the latest snapshot received.
func (m *Model) Progress() transfer.Progress {
	return m.progress
}

// Recent returns the rendered activity lines.
func (m *Model) Recent() []string {
	return m.recent
}
