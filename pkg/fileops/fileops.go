// Package fileops provides the streaming copy and hashing primitives used by
// the transfer engine. All I/O goes through filesystem.FileSystem.
package fileops

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joe/transfer-pilot/pkg/filesystem"
)

// Exported constants.
const (
	// BufferSize is the chunk size used for copying and hashing (1 MiB)
	BufferSize = 1024 * 1024
	// DefaultDirPermissions is the default permission mode for created directories
	DefaultDirPermissions = 0o750
)

// Exported variables.
var (
	ErrCopyCancelled = errors.New("copy cancelled")
)

// CancelChecker reports whether the current operation should stop.
// It is polled before every chunk read.
type CancelChecker interface {
	Cancelled() bool
}

// CopyStats contains timing information about a copy operation
type CopyStats struct {
	BytesCopied int64
	ReadTime    time.Duration
	WriteTime   time.Duration
	// TimesErr is set when the copy succeeded but the source modification
	// time could not be applied to the destination.
	TimesErr error
}

// ProgressCallback is called after every chunk written.
// bytesTransferred is cumulative for the current file.
type ProgressCallback func(bytesTransferred int64, totalBytes int64, currentFile string)

// FileOps provides file operations with dependency injection for filesystem access.
// Source and destination may live on different filesystems.
type FileOps struct {
	SourceFS filesystem.FileSystem
	DestFS   filesystem.FileSystem
}

// NewFileOps creates a FileOps that reads and writes through one filesystem.
func NewFileOps(fs filesystem.FileSystem) *FileOps {
	return &FileOps{SourceFS: fs, DestFS: fs}
}

// NewDualFileOps creates a new FileOps instance with separate source and destination filesystems.
func NewDualFileOps(sourceFS, destFS filesystem.FileSystem) *FileOps {
	return &FileOps{SourceFS: sourceFS, DestFS: destFS}
}

// NewRealFileOps creates a new FileOps instance using the real filesystem.
func NewRealFileOps() *FileOps {
	return NewFileOps(filesystem.NewRealFileSystem())
}

// ComputeFileHash returns the lowercase hex SHA-256 of a source-side file.
func (fo *FileOps) ComputeFileHash(filePath string) (string, error) {
	return computeHash(fo.SourceFS, filePath)
}

// ComputeDestFileHash returns the lowercase hex SHA-256 of a destination-side file.
func (fo *FileOps) ComputeDestFileHash(filePath string) (string, error) {
	return computeHash(fo.DestFS, filePath)
}

// CopyFileWithStats streams src to dst in BufferSize chunks, reporting each
// chunk through progress. The cancel checker is polled before every read; on
// cancellation ErrCopyCancelled is returned and whatever was written stays on
// disk. On success the source modification time is applied to dst; a failure
// there is reported in CopyStats.TimesErr and does not fail the copy.
//
//nolint:funlen // Linear open/create/copy/finalize sequence
func (fo *FileOps) CopyFileWithStats(
	src, dst string,
	progress ProgressCallback,
	cancel CancelChecker,
) (*CopyStats, error) {
	stats := &CopyStats{}

	sourceFile, err := fo.SourceFS.Open(src)
	if err != nil {
		return stats, fmt.Errorf("failed to open source file %s: %w", src, err)
	}

	defer func() {
		_ = sourceFile.Close()
	}()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return stats, fmt.Errorf("failed to stat source file %s: %w", src, err)
	}

	dstDir := filepath.Dir(dst)

	err = fo.DestFS.MkdirAll(dstDir, DefaultDirPermissions)
	if err != nil {
		return stats, fmt.Errorf("failed to create destination directory %s: %w", dstDir, err)
	}

	destFile, err := fo.DestFS.Create(dst)
	if err != nil {
		return stats, fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	closed := false

	defer func() {
		if !closed {
			_ = destFile.Close()
		}
	}()

	written, err := copyLoop(sourceFile, destFile, stats, sourceInfo.Size(), src, progress, cancel)
	stats.BytesCopied = written

	if err != nil {
		return stats, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	// Close before setting the modification time, some filesystems
	// update mtime on close.
	closed = true

	err = destFile.Close()
	if err != nil {
		return stats, fmt.Errorf("failed to close destination file %s: %w", dst, err)
	}

	err = fo.DestFS.Chtimes(dst, sourceInfo.ModTime(), sourceInfo.ModTime())
	if err != nil {
		stats.TimesErr = fmt.Errorf("failed to preserve modification time for %s: %w", dst, err)
	}

	return stats, nil
}

// Remove removes a source-side file. Used when moving.
func (fo *FileOps) Remove(path string) error {
	err := fo.SourceFS.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// Stat returns source-side file information.
func (fo *FileOps) Stat(path string) (os.FileInfo, error) {
	info, err := fo.SourceFS.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// StatDest returns destination-side file information.
func (fo *FileOps) StatDest(path string) (os.FileInfo, error) {
	info, err := fo.DestFS.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

func checkCancellation(cancel CancelChecker) error {
	if cancel != nil && cancel.Cancelled() {
		return ErrCopyCancelled
	}

	return nil
}

func computeHash(fs filesystem.FileSystem, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}

	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	buf := make([]byte, BufferSize)

	_, err = io.CopyBuffer(hash, onlyReader{file}, buf)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s for hashing: %w", filePath, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// copyLoop performs the actual file copy with progress tracking and timing.
//
//nolint:lll // Long function signature with many parameters
func copyLoop(sourceFile, destFile filesystem.File, stats *CopyStats, sourceSize int64, srcPath string, progress ProgressCallback, cancel CancelChecker) (int64, error) {
	var written int64

	buf := make([]byte, BufferSize)

	var (
		nr, nw int //nolint:varnamelen // nr/nw are idiomatic for bytes read/written
		err    error
	)

	for {
		err = checkCancellation(cancel)
		if err != nil {
			return written, err
		}

		readStart := time.Now()
		nr, err = sourceFile.Read(buf)
		stats.ReadTime += time.Since(readStart)

		if nr > 0 {
			nw, err = writeBufferWithTiming(destFile, buf, nr, stats)
			if err != nil {
				return written, fmt.Errorf("failed to write to destination: %w", err)
			}

			if nr != nw {
				return written, fmt.Errorf("short write: %w", io.ErrShortWrite)
			}

			written += int64(nw)

			if progress != nil {
				progress(written, sourceSize, srcPath)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return written, fmt.Errorf("failed to read from source: %w", err)
		}
	}

	return written, nil
}

// onlyReader hides WriterTo so io.CopyBuffer uses the supplied buffer.
type onlyReader struct {
	io.Reader
}

// writeBufferWithTiming writes a buffer to a file and tracks the write time.
func writeBufferWithTiming(destFile filesystem.File, buf []byte, nr int, stats *CopyStats) (int, error) {
	writeStart := time.Now()
	nw, err := destFile.Write(buf[0:nr])
	stats.WriteTime += time.Since(writeStart)

	return nw, err //nolint:wrapcheck // Error is from io.Writer interface, context is clear
}
