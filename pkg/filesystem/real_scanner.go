package filesystem

import (
	"path/filepath"

	"github.com/kr/fs"
)

// realFileScanner implements FileScanner using kr/fs's Lstat-based walker,
// so symlinks below the root are never followed or yielded.
type realFileScanner struct {
	root    string
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

// newRealFileScanner creates a new scanner for the given directory.
func newRealFileScanner(root string) *realFileScanner {
	return &realFileScanner{
		root:  root,
		files: make([]FileInfo, 0),
		index: -1,
	}
}

// Next advances to the next file and returns its info.
func (s *realFileScanner) Next() (FileInfo, bool) {
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

// Err returns any error that occurred during scanning.
func (s *realFileScanner) Err() error {
	return s.err
}

// scan walks the tree and collects regular files. A symlinked root is
// resolved first; symlinks inside the tree are skipped.
func (s *realFileScanner) scan() {
	walkRoot := s.root

	resolved, err := filepath.EvalSymlinks(s.root)
	if err == nil {
		walkRoot = resolved
	}

	walker := fs.Walk(walkRoot)
	for walker.Step() {
		// Unreadable entries (permission errors, vanished files) are skipped.
		if walker.Err() != nil {
			continue
		}

		info := walker.Stat()
		if !info.Mode().IsRegular() {
			continue
		}

		relPath, err := filepath.Rel(walkRoot, walker.Path())
		if err != nil {
			continue
		}

		s.files = append(s.files, FileInfo{
			Path:         filepath.Join(s.root, relPath),
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
		})
	}
}
