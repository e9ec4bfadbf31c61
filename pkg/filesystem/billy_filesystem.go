package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

// BillyFileSystem adapts any go-billy filesystem to FileSystem.
// Chtimes is a no-op unless the backend implements billy.Change.
type BillyFileSystem struct {
	fs billy.Filesystem
}

// NewBillyFileSystem wraps a billy filesystem.
func NewBillyFileSystem(bfs billy.Filesystem) *BillyFileSystem {
	return &BillyFileSystem{fs: bfs}
}

// NewInMemoryFileSystem returns a FileSystem backed by memfs. Used by tests.
func NewInMemoryFileSystem() *BillyFileSystem {
	return NewBillyFileSystem(memfs.New())
}

// Backend exposes the wrapped billy filesystem.
func (b *BillyFileSystem) Backend() billy.Filesystem {
	return b.fs
}

// Chtimes changes file times when the backend supports it.
func (b *BillyFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	changer, ok := b.fs.(billy.Change)
	if !ok {
		return nil
	}

	err := changer.Chtimes(path, atime, mtime)
	if err != nil {
		return fmt.Errorf("failed to change times for %s: %w", path, err)
	}

	return nil
}

// Create creates or truncates a file for writing.
func (b *BillyFileSystem) Create(path string) (File, error) {
	file, err := b.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return &billyFile{File: file, fs: b.fs, path: path}, nil
}

// Exists reports whether path resolves to anything.
func (b *BillyFileSystem) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
}

// MkdirAll creates a directory and all necessary parents.
func (b *BillyFileSystem) MkdirAll(path string, perm os.FileMode) error {
	err := b.fs.MkdirAll(path, perm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// Open opens a file for reading.
func (b *BillyFileSystem) Open(path string) (File, error) {
	file, err := b.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &billyFile{File: file, fs: b.fs, path: path}, nil
}

// Remove removes a file or empty directory.
func (b *BillyFileSystem) Remove(path string) error {
	err := b.fs.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// Scan returns an iterator over the regular files below root.
func (b *BillyFileSystem) Scan(root string) FileScanner {
	return &billyFileScanner{fs: b.fs, root: root, index: -1}
}

// Stat returns file information.
func (b *BillyFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// WriteFile writes data to path, creating or truncating it.
func (b *BillyFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	err := util.WriteFile(b.fs, path, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// billyFile adds Stat to billy.File, which does not expose one.
type billyFile struct {
	billy.File

	fs   billy.Filesystem
	path string
}

func (f *billyFile) Stat() (os.FileInfo, error) {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", f.path, err)
	}

	return info, nil
}

// billyFileScanner collects regular files with util.Walk, which uses Lstat
// and therefore never descends into symlinks.
type billyFileScanner struct {
	fs      billy.Filesystem
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

func (s *billyFileScanner) Next() (FileInfo, bool) {
	if !s.scanned {
		s.scan()
		s.scanned = true
	}

	if s.err != nil {
		return FileInfo{}, false
	}

	s.index++
	if s.index >= len(s.files) {
		return FileInfo{}, false
	}

	return s.files[s.index], true
}

func (s *billyFileScanner) Err() error {
	return s.err
}

func (s *billyFileScanner) scan() {
	err := util.Walk(s.fs, s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			// Skip unreadable entries, keep walking.
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		relPath, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil //nolint:nilerr // entries outside the root are skipped
		}

		s.files = append(s.files, FileInfo{
			Path:         path,
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})

		return nil
	})
	if err != nil {
		s.err = fmt.Errorf("failed to walk %s: %w", s.root, err)
	}
}
