package transfer

import (
	"fmt"
	"strings"
)

// CopyMode selects whether sources are kept after a successful transfer.
type CopyMode int

const (
	// Copy leaves the source in place.
	Copy CopyMode = iota
	// Move deletes the source once the copy (and verification) succeeded.
	Move
)

// String returns the string representation of CopyMode
func (m CopyMode) String() string {
	switch m {
	case Copy:
		return "copy"
	case Move:
		return "move"
	default:
		return "unknown"
	}
}

// ParseCopyMode parses a string into a CopyMode
func ParseCopyMode(s string) (CopyMode, error) {
	switch strings.ToLower(s) {
	case "copy":
		return Copy, nil
	case "move":
		return Move, nil
	default:
		return Copy, fmt.Errorf("invalid copy mode: %s (valid: copy, move)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (m *CopyMode) UnmarshalText(text []byte) error {
	parsed, err := ParseCopyMode(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler
func (m CopyMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ConflictPolicy decides what happens when a destination path already exists.
type ConflictPolicy int

const (
	// Rename picks "name (N).ext" with the lowest free N. It is the zero value
	// and the fallback for unrecognized input.
	Rename ConflictPolicy = iota
	// Overwrite replaces the existing file.
	Overwrite
	// Skip leaves the existing file alone and records the entry as skipped.
	Skip
)

// String returns the string representation of ConflictPolicy
func (p ConflictPolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Skip:
		return "skip"
	default:
		return "rename"
	}
}

// ParseConflictPolicy never fails: anything other than overwrite or skip
// means rename.
func ParseConflictPolicy(s string) ConflictPolicy {
	switch strings.ToLower(s) {
	case "overwrite":
		return Overwrite
	case "skip":
		return Skip
	default:
		return Rename
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (p *ConflictPolicy) UnmarshalText(text []byte) error {
	*p = ParseConflictPolicy(string(text))

	return nil
}

// MarshalText implements encoding.TextMarshaler
func (p ConflictPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// VerifyMode selects the post-copy integrity check.
type VerifyMode int

const (
	// VerifyNone skips verification.
	VerifyNone VerifyMode = iota
	// VerifySize compares the destination size with the source size.
	VerifySize
	// VerifySHA256 re-reads both files and compares SHA-256 digests.
	VerifySHA256
)

// String returns the string representation of VerifyMode
func (v VerifyMode) String() string {
	switch v {
	case VerifyNone:
		return "none"
	case VerifySize:
		return "size"
	case VerifySHA256:
		return "sha256"
	default:
		return "unknown"
	}
}

// ParseVerifyMode parses a string into a VerifyMode
func ParseVerifyMode(s string) (VerifyMode, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return VerifyNone, nil
	case "size":
		return VerifySize, nil
	case "sha256", "hash":
		return VerifySHA256, nil
	default:
		return VerifyNone, fmt.Errorf("invalid verify mode: %s (valid: none, size, sha256)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (v *VerifyMode) UnmarshalText(text []byte) error {
	parsed, err := ParseVerifyMode(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler
func (v VerifyMode) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
