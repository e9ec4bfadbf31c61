//go:build !(linux || darwin || freebsd)

package volume

import "context"

// StatfsProbe is unavailable on this platform and always reports 0.
type StatfsProbe struct{}

// AvailableBytes returns 0.
func (StatfsProbe) AvailableBytes(context.Context, string) uint64 {
	return 0
}
