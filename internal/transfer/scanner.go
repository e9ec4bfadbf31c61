package transfer

import (
	"fmt"
	"path/filepath"

	"github.com/joe/transfer-pilot/internal/pick"
	"github.com/joe/transfer-pilot/pkg/filesystem"
)

// defaultFolderName is used when a folder pick has no usable base name ("/").
const defaultFolderName = "Folder"

// FileEntry is one concrete file to transfer.
type FileEntry struct {
	// SourcePath is the file's path as found by the scan.
	SourcePath string
	// FolderRelativePath is "<folder name>/<path inside folder>" for entries
	// from a folder pick, and empty for direct file picks.
	FolderRelativePath string
	// Pick is the index of the pick that produced the entry.
	Pick int
}

// FromFolder reports whether the entry came from a folder pick.
func (f FileEntry) FromFolder() bool {
	return f.FolderRelativePath != ""
}

// Scan expands picks into file entries, preserving pick order.
//
// A file pick is kept only if it currently resolves (following symlinks) to
// a regular file. A folder pick contributes every regular file below it that
// passes the filter; symlinks, directories and special files inside it are
// not entries. Unreadable entries are skipped.
func Scan(fs filesystem.FileSystem, items []pick.Item, filter FileFilter) ([]FileEntry, error) {
	entries := make([]FileEntry, 0, len(items))

	for index, item := range items {
		info, err := fs.Stat(item.Path)
		if err != nil {
			continue
		}

		switch item.Kind {
		case pick.File:
			if info.Mode().IsRegular() {
				entries = append(entries, FileEntry{SourcePath: item.Path, Pick: index})
			}
		case pick.Folder:
			if !info.IsDir() {
				continue
			}

			found, err := scanFolder(fs, item.Path, index, filter)
			if err != nil {
				return nil, err
			}

			entries = append(entries, found...)
		}
	}

	return entries, nil
}

func scanFolder(fs filesystem.FileSystem, root string, index int, filter FileFilter) ([]FileEntry, error) {
	base := folderBaseName(root)

	var entries []FileEntry

	scanner := fs.Scan(root)
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		if filter != nil && !filter.ShouldInclude(info.RelativePath) {
			continue
		}

		entries = append(entries, FileEntry{
			SourcePath:         info.Path,
			FolderRelativePath: filepath.Join(base, info.RelativePath),
			Pick:               index,
		})
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to scan folder %s: %w", root, err)
	}

	return entries, nil
}

func folderBaseName(root string) string {
	base := filepath.Base(filepath.Clean(root))

	switch base {
	case ".", "..", string(filepath.Separator), "":
		return defaultFolderName
	default:
		return base
	}
}
