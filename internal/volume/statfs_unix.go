//go:build linux || darwin || freebsd

package volume

import (
	"context"

	"golang.org/x/sys/unix"
)

// StatfsProbe reads available space with statfs(2), without spawning df.
type StatfsProbe struct{}

// AvailableBytes returns blocks available to unprivileged users times the
// block size, or 0 if statfs fails.
func (StatfsProbe) AvailableBytes(_ context.Context, mount string) uint64 {
	var stat unix.Statfs_t

	err := unix.Statfs(mount, &stat)
	if err != nil {
		return 0
	}

	return uint64(stat.Bavail) * uint64(stat.Bsize) //nolint:gosec,unconvert // field widths vary per OS
}
