package transfer

import (
	"math"
)

// Event is the interface implemented by all transfer engine events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events. Emit must not block the
// engine for long; delivery is best effort and never fails a transfer.
type EventEmitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a function to EventEmitter.
type EmitterFunc func(Event)

// Emit calls f.
func (f EmitterFunc) Emit(event Event) {
	f(event)
}

// FanOut returns an emitter that hands each event to every non-nil emitter,
// in order.
func FanOut(emitters ...EventEmitter) EventEmitter {
	return EmitterFunc(func(event Event) {
		for _, emitter := range emitters {
			if emitter != nil {
				emitter.Emit(event)
			}
		}
	})
}

// Phase is the stage a progress event reports.
type Phase string

// Exported constants.
const (
	PhaseScanning  Phase = "scanning"
	PhaseCopying   Phase = "copying"
	PhaseVerifying Phase = "verifying"
	PhaseDone      Phase = "done"
	PhaseCancelled Phase = "cancelled"
	PhaseError     Phase = "error"
)

// Terminal reports whether no further events follow this phase.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseCancelled || p == PhaseError
}

// Progress is the live progress snapshot sent to the UI.
// CurrentFile is 1-based; 0 means no file has started yet.
type Progress struct {
	Phase       Phase   `json:"phase"`
	CurrentFile uint64  `json:"current_file"`
	TotalFiles  uint64  `json:"total_files"`
	CurrentPath string  `json:"current_path"`
	BytesDone   uint64  `json:"bytes_done"`
	BytesTotal  uint64  `json:"bytes_total"`
	Percent     float64 `json:"percent"`
}

func (Progress) isEvent() {}

// EntryRecorded is emitted each time a manifest row is appended.
type EntryRecorded struct {
	Index uint64
	Row   ManifestRow
}

func (EntryRecorded) isEvent() {}

// Percent returns done/total as a percentage clamped to [0, 100]. A zero
// total yields 0.
func Percent(done, total uint64) float64 {
	if total == 0 {
		return 0
	}

	pct := float64(done) / float64(total) * 100 //nolint:mnd // percentage

	return math.Max(0, math.Min(100, pct)) //nolint:mnd // percentage
}

// addSaturating returns a+b, or MaxUint64 if the sum would overflow.
func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}
