package filesystem

import (
	"time"
)

// FileScanner is an iterator over the regular files of a directory tree.
type FileScanner interface {
	// Next advances to the next file and returns its info.
	// Returns (FileInfo{}, false) when done or on error.
	// Check Err() after Next() returns false to distinguish between end-of-scan and error.
	Next() (FileInfo, bool)

	// Err returns any error that stopped the scan. Entries that could not be
	// read are skipped, not reported here.
	Err() error
}

// FileInfo describes one regular file found by a scan.
type FileInfo struct {
	// Path is the full path, rooted at the path the scan was started with.
	Path string

	// RelativePath is the path relative to the scan root
	RelativePath string

	// Size is the file size in bytes
	Size int64

	// ModTime is the modification time
	ModTime time.Time
}
