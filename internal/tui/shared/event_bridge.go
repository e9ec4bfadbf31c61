package shared

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/transfer-pilot/internal/transfer"
)

// EventBufferSize is how many engine events may queue before new ones are dropped.
const EventBufferSize = 100

// EngineEventMsg wraps a transfer.Event for use as a tea.Msg.
type EngineEventMsg struct {
	Event transfer.Event
}

// EventBridge adapts transfer events to bubble tea messages.
// It implements transfer.EventEmitter and provides a channel for TUI consumption.
type EventBridge struct {
	mu        sync.Mutex
	eventChan chan tea.Msg
	closed    bool
	dropped   int
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, EventBufferSize),
	}
}

// Emit implements transfer.EventEmitter. It never blocks the engine: when the
// buffer is full the event is dropped. The next progress snapshot carries the
// same counters, so a dropped one costs only a frame.
func (b *EventBridge) Emit(event transfer.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	select {
	case b.eventChan <- EngineEventMsg{Event: event}:
	default:
		b.dropped++
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (b *EventBridge) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

// Subscribe returns the event channel for receiving events.
func (b *EventBridge) Subscribe() <-chan tea.Msg {
	return b.eventChan
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel. Later Emit calls are ignored.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
