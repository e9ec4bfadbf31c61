// Package volume answers "how much space is left at this mount point" and
// lists mounted volumes. Every probe is best effort: failures read as zero
// available bytes, never as an error the engine has to handle.
package volume

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const kibibyte = 1024

// SpaceProvider reports the bytes available to unprivileged writers at a
// mount point. Implementations return 0 when the answer is unknown.
type SpaceProvider interface {
	AvailableBytes(ctx context.Context, mount string) uint64
}

// SpaceFunc adapts a function to SpaceProvider.
type SpaceFunc func(ctx context.Context, mount string) uint64

// AvailableBytes calls f.
func (f SpaceFunc) AvailableBytes(ctx context.Context, mount string) uint64 {
	return f(ctx, mount)
}

// Fixed is a SpaceProvider that always reports the same number. Useful for
// tests and dry runs.
type Fixed uint64

// AvailableBytes returns f.
func (f Fixed) AvailableBytes(context.Context, string) uint64 {
	return uint64(f)
}

// Info describes one mounted volume.
type Info struct {
	Name       string  `json:"name"`
	MountPoint string  `json:"mount_point"`
	FSType     *string `json:"fs_type"`
	TotalBytes uint64  `json:"total_bytes"`
	AvailBytes uint64  `json:"avail_bytes"`
	Removable  *bool   `json:"removable"`
}

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec. Output is returned even when the
// command exits non-zero, since df still prints the volumes it could read.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return out, nil
}

// DFProbe asks `df -k <mount>` for available space.
type DFProbe struct {
	Run Runner
}

// NewDFProbe returns a DFProbe backed by os/exec.
func NewDFProbe() *DFProbe {
	return &DFProbe{Run: ExecRunner}
}

// AvailableBytes reads column 4 of the first data line, in KiB.
func (p *DFProbe) AvailableBytes(ctx context.Context, mount string) uint64 {
	out, err := p.run(ctx, "df", "-k", mount)
	if err != nil {
		return 0
	}

	return ParseDFAvailable(out)
}

// List runs `df -k` and returns every volume it reports.
func (p *DFProbe) List(ctx context.Context) ([]Info, error) {
	out, err := p.run(ctx, "df", "-k")
	if err != nil {
		return nil, err
	}

	return ParseDFTable(out), nil
}

func (p *DFProbe) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	run := p.Run
	if run == nil {
		run = ExecRunner
	}

	return run(ctx, name, args...)
}

// ParseDFAvailable extracts available bytes from `df -k <mount>` output.
// Anything unexpected yields 0.
func ParseDFAvailable(out []byte) uint64 {
	lines := bufio.NewScanner(bytes.NewReader(out))

	// header
	if !lines.Scan() || !lines.Scan() {
		return 0
	}

	fields := strings.Fields(lines.Text())
	if len(fields) < 4 { //nolint:mnd // df columns: fs, blocks, used, avail
		return 0
	}

	return kib(fields[3])
}

// ParseDFTable parses full `df -k` output. The header is skipped, as are
// lines with fewer than six columns. Name is the filesystem column and the
// mount point is the last column.
func ParseDFTable(out []byte) []Info {
	var vols []Info

	lines := bufio.NewScanner(bytes.NewReader(out))
	for first := true; lines.Scan(); first = false {
		if first {
			continue
		}

		fields := strings.Fields(lines.Text())
		if len(fields) < 6 { //nolint:mnd // minimum df -k row width
			continue
		}

		mount := fields[len(fields)-1]

		vols = append(vols, Info{
			Name:       fields[0],
			MountPoint: mount,
			TotalBytes: kib(fields[1]),
			AvailBytes: kib(fields[3]),
		})
	}

	return vols
}

// Find returns the volume whose mount point equals mount.
func Find(vols []Info, mount string) (Info, bool) {
	for _, v := range vols {
		if v.MountPoint == mount {
			return v, true
		}
	}

	return Info{}, false
}

// Listed reports whether dest is one of the mount points df reports. A
// failed listing counts as listed, so a missing df never blocks a run.
func (p *DFProbe) Listed(ctx context.Context, dest string) bool {
	vols, err := p.List(ctx)
	if err != nil || len(vols) == 0 {
		return true
	}

	_, ok := Find(vols, filepath.Clean(dest))

	return ok
}

func kib(field string) uint64 {
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0
	}

	if n > ^uint64(0)/kibibyte {
		return ^uint64(0)
	}

	return n * kibibyte
}
