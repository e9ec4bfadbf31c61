package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/joe/transfer-pilot/internal/transfer"
)

// Collector keeps every manifest row the engine records, for printing
// failures after the run.
type Collector struct {
	mu   sync.Mutex
	rows []transfer.ManifestRow
}

// Emit implements transfer.EventEmitter.
func (c *Collector) Emit(event transfer.Event) {
	recorded, ok := event.(transfer.EntryRecorded)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rows = append(c.rows, recorded.Row)
}

// Rows returns a copy of the rows collected so far.
func (c *Collector) Rows() []transfer.ManifestRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]transfer.ManifestRow(nil), c.rows...)
}

// Lines prints one line per finished entry and one for the terminal phase.
// It is the plain-output counterpart of the progress screen.
type Lines struct {
	W         io.Writer
	total     uint64
	cancelled bool
}

// Emit implements transfer.EventEmitter. Write errors are ignored.
func (l *Lines) Emit(event transfer.Event) {
	switch ev := event.(type) {
	case transfer.Progress:
		switch {
		case ev.Phase == transfer.PhaseCopying && ev.CurrentFile == 0:
			l.total = ev.TotalFiles
			fmt.Fprintf(l.W, "Transferring %d file(s), %s\n", ev.TotalFiles, Size(ev.BytesTotal))
		case ev.Phase == transfer.PhaseCancelled && !l.cancelled:
			l.cancelled = true
			fmt.Fprintln(l.W, "Cancelled, finishing the manifest...")
		}
	case transfer.EntryRecorded:
		line := fmt.Sprintf("[%d/%d] %-9s %s", ev.Index, l.total, ev.Row.Status, ev.Row.Source)
		if ev.Row.Error != nil {
			line += ": " + *ev.Row.Error
		}

		fmt.Fprintln(l.W, line)
	}
}
