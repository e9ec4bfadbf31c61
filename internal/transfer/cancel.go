package transfer

import "sync/atomic"

// CancelToken is a per-run cooperative cancellation flag. The caller resets
// it before a run; the engine only reads it, before each entry and before
// each chunk read.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns a token in the "not cancelled" state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests that the run stop. Safe from any goroutine.
func (c *CancelToken) Cancel() {
	c.flag.Store(true)
}

// Cancelled reports whether Cancel has been called since the last Reset.
// A nil token is never cancelled.
func (c *CancelToken) Cancelled() bool {
	return c != nil && c.flag.Load()
}

// Reset clears the flag for a new run.
func (c *CancelToken) Reset() {
	c.flag.Store(false)
}
