package transfer

import (
	"errors"

	"github.com/joe/transfer-pilot/pkg/fileops"
)

// Exported variables.
var (
	// ErrCancelled marks a copy interrupted by the cancel token.
	ErrCancelled = fileops.ErrCopyCancelled
	// ErrSizeMismatch is the size verification failure.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrHashMismatch is the sha256 verification failure.
	ErrHashMismatch = errors.New("sha256 mismatch")
	// ErrSessionSetup wraps failures creating the session directory or pointer files.
	ErrSessionSetup = errors.New("session setup failed")
	// ErrManifestWrite wraps failures serializing or writing manifest.json.
	ErrManifestWrite = errors.New("manifest write failed")
	// ErrMetadata wraps failures reading source metadata for a scanned entry.
	ErrMetadata = errors.New("metadata error")
)
