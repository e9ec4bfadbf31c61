// Package pick models the items a user selects for transfer.
package pick

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Kind distinguishes a file pick from a folder pick.
type Kind int

const (
	// File is a single file placed flatly under Files/.
	File Kind = iota
	// Folder is a directory whose tree is preserved under Folders/.
	Folder
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Folder:
		return "folder"
	default:
		return "unknown"
	}
}

// ParseKind parses "file" or "folder", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return File, nil
	case "folder", "dir", "directory":
		return Folder, nil
	default:
		return File, fmt.Errorf("invalid pick kind: %s (valid: file, folder)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// Item is one user selection. It is immutable once a transfer starts.
// ID is the queue ID when the pick came through the queue, empty otherwise.
type Item struct {
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
}

// QueueItem is an Item waiting in the selection queue.
// SizeBytes and FileCount stay nil until a preflight measures the pick.
type QueueItem struct {
	ID        string  `json:"id"`
	Kind      Kind    `json:"kind"`
	Path      string  `json:"path"`
	SizeBytes *uint64 `json:"size_bytes"`
	FileCount *uint64 `json:"file_count"`
}

// Item returns the pick carried by the queue entry.
func (q QueueItem) Item() Item {
	return Item{ID: q.ID, Kind: q.Kind, Path: q.Path}
}

// Measured returns the queue entry for item with its file count and size set.
func Measured(item Item, fileCount, sizeBytes uint64) QueueItem {
	return QueueItem{
		ID:        item.ID,
		Kind:      item.Kind,
		Path:      item.Path,
		SizeBytes: &sizeBytes,
		FileCount: &fileCount,
	}
}

// StatFunc reports file info for a path. os.Stat satisfies it.
type StatFunc func(path string) (os.FileInfo, error)

// FromPaths turns raw paths (dropped onto the app or passed on the command
// line) into queue entries. Blank paths are ignored. Paths that resolve to a
// directory become folder picks; everything else, including paths that do
// not exist, becomes a file pick and is filtered later by the scanner.
func FromPaths(paths []string, stat StatFunc) []QueueItem {
	if stat == nil {
		stat = os.Stat
	}

	out := make([]QueueItem, 0, len(paths))

	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}

		kind := File
		if info, err := stat(path); err == nil && info.IsDir() {
			kind = Folder
		}

		out = append(out, newQueueItem(kind, path))
	}

	return out
}

// Queue wraps non-blank paths as queue entries of one kind, without
// touching the filesystem.
func Queue(kind Kind, paths ...string) []QueueItem {
	out := make([]QueueItem, 0, len(paths))

	for _, path := range paths {
		if strings.TrimSpace(path) != "" {
			out = append(out, newQueueItem(kind, path))
		}
	}

	return out
}

// Files wraps paths as file picks without touching the filesystem.
func Files(paths ...string) []Item {
	return wrap(File, paths)
}

// Folders wraps paths as folder picks without touching the filesystem.
func Folders(paths ...string) []Item {
	return wrap(Folder, paths)
}

// Items extracts the picks from queue entries, preserving order.
func Items(queue []QueueItem) []Item {
	items := make([]Item, 0, len(queue))
	for _, q := range queue {
		items = append(items, q.Item())
	}

	return items
}

func newQueueItem(kind Kind, path string) QueueItem {
	return QueueItem{ID: uuid.NewString(), Kind: kind, Path: path}
}

func wrap(kind Kind, paths []string) []Item {
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, Item{Kind: kind, Path: p})
	}

	return items
}
