//nolint:varnamelen // Test files use idiomatic short variable names (t, g, fs, etc.)
package transfer_test

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/volume"
	"github.com/joe/transfer-pilot/pkg/filesystem"
)

const destMount = "/mnt/usb"

//nolint:gochecknoglobals // fixed session start shared by tests
var sessionStart = time.Date(2025, 12, 13, 18, 53, 54, 0, time.Local)

func sessionDir(mount string) string {
	return filepath.Join(mount, "Transfers", "2025-12-13", "185354")
}

// stepClock returns start, then advances by step on every call.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now
	c.now = c.now.Add(c.step)

	return now
}

func fixedClock() *stepClock {
	return &stepClock{now: sessionStart}
}

// recorder keeps every emitted event and can run a hook on each one.
type recorder struct {
	events []transfer.Event
	onEmit func(transfer.Event)
}

func (r *recorder) Emit(event transfer.Event) {
	r.events = append(r.events, event)
	if r.onEmit != nil {
		r.onEmit(event)
	}
}

func (r *recorder) progress() []transfer.Progress {
	var out []transfer.Progress

	for _, ev := range r.events {
		if p, ok := ev.(transfer.Progress); ok {
			out = append(out, p)
		}
	}

	return out
}

func (r *recorder) last() transfer.Progress {
	p := r.progress()

	return p[len(p)-1]
}

func newMemEngine(fs filesystem.FileSystem) (*transfer.Engine, *recorder) {
	engine := transfer.NewEngine(fs)
	engine.TimeProvider = fixedClock()
	engine.Space = volume.Fixed(1 << 40)

	rec := &recorder{}
	engine.SetEventEmitter(rec)

	return engine, rec
}

func writeFile(t *testing.T, fs filesystem.FileSystem, path string, data []byte) {
	t.Helper()
	NewWithT(t).Expect(fs.WriteFile(path, data, 0o644)).Should(Succeed())
}

func readFile(t *testing.T, fs *filesystem.BillyFileSystem, path string) []byte {
	t.Helper()

	data, err := util.ReadFile(fs.Backend(), path)
	NewWithT(t).Expect(err).ShouldNot(HaveOccurred())

	return data
}

func exists(t *testing.T, fs filesystem.FileSystem, path string) bool {
	t.Helper()

	ok, err := fs.Exists(path)
	NewWithT(t).Expect(err).ShouldNot(HaveOccurred())

	return ok
}

// failingRemoveFS refuses to delete anything.
type failingRemoveFS struct {
	*filesystem.BillyFileSystem
}

func (f failingRemoveFS) Remove(path string) error {
	return errors.New("remove " + path + ": operation not permitted")
}

// mutatingFS wraps files created below prefix so their writes are altered.
type mutatingFS struct {
	*filesystem.BillyFileSystem

	prefix string
	mutate func(p []byte) []byte
}

func (f mutatingFS) Create(path string) (filesystem.File, error) {
	file, err := f.BillyFileSystem.Create(path)
	if err != nil || !isBelow(f.prefix, path) {
		return file, err
	}

	return &mutatingFile{File: file, mutate: f.mutate}, nil
}

type mutatingFile struct {
	filesystem.File

	mutate func(p []byte) []byte
}

// Write reports the caller's length even if the mutation changed it.
func (m *mutatingFile) Write(p []byte) (int, error) {
	buf := m.mutate(append([]byte(nil), p...))

	_, err := m.File.Write(buf)
	if err != nil {
		return 0, err
	}

	return len(p), nil
}

func flipFirstBit(p []byte) []byte {
	if len(p) > 0 {
		p[0] ^= 0x01
	}

	return p
}

func dropLastByte(p []byte) []byte {
	if len(p) > 0 {
		return p[:len(p)-1]
	}

	return p
}

func isBelow(prefix, path string) bool {
	rel, err := filepath.Rel(prefix, path)

	return err == nil && rel != ".." && !filepath.IsAbs(rel) && (len(rel) < 3 || rel[:3] != "../")
}

// noTimesFS cannot set modification times, like many removable and SMB volumes.
type noTimesFS struct {
	*filesystem.BillyFileSystem
}

func (noTimesFS) Chtimes(string, time.Time, time.Time) error {
	return errors.New("chtimes: operation not supported")
}

// failingCreateFS refuses to create files with the given base name.
type failingCreateFS struct {
	*filesystem.BillyFileSystem

	name string
}

func (f failingCreateFS) Create(path string) (filesystem.File, error) {
	if filepath.Base(path) == f.name {
		return nil, errors.New("open " + path + ": input/output error")
	}

	return f.BillyFileSystem.Create(path)
}

// crowdedFS reports every path below prefix as taken.
type crowdedFS struct {
	*filesystem.BillyFileSystem

	prefix string
}

func (f crowdedFS) Exists(path string) (bool, error) {
	if isBelow(f.prefix, path) {
		return true, nil
	}

	return f.BillyFileSystem.Exists(path)
}
