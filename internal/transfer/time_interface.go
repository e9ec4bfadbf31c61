package transfer

import (
	"time"
)

// RealTimeProvider implements TimeProvider using real time functions.
type RealTimeProvider struct{}

// Now returns the current local time.
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// TimeProvider provides time-related functionality for dependency injection.
// Session folder names and progress throttling both read it.
type TimeProvider interface {
	Now() time.Time
}

// throttle lets an event through at most once per interval.
type throttle struct {
	clock    TimeProvider
	interval time.Duration
	last     time.Time
}

func newThrottle(clock TimeProvider, interval time.Duration) *throttle {
	return &throttle{clock: clock, interval: interval, last: clock.Now()}
}

// reset restarts the interval, as if an event had just been sent.
func (t *throttle) reset() {
	t.last = t.clock.Now()
}

// allow reports whether an event may be sent now, and if so restarts the
// interval.
func (t *throttle) allow() bool {
	now := t.clock.Now()
	if now.Sub(t.last) < t.interval {
		return false
	}

	t.last = now

	return true
}
