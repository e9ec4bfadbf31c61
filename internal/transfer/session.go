package transfer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joe/transfer-pilot/pkg/filesystem"
)

// Layout names under the destination mount.
const (
	TransfersDirName = "Transfers"
	FilesDirName     = "Files"
	FoldersDirName   = "Folders"
	LatestFileName   = "_latest.txt"
	ReadmeFileName   = "README.txt"
	ManifestFileName = "manifest.json"
	SessionLogName   = "transfer.log"

	dayLayout     = "2006-01-02"
	sessionLayout = "150405"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

const readmeText = `TransferPilot output

Folder layout:
  Transfers/<YYYY-MM-DD>/<HHMMSS>/
    - Files/      (loose files you added directly)
    - Folders/    (folder picks; preserves the folder tree)
    - manifest.json

Pointers:
  Transfers/_latest.txt -> most recent run folder
  Transfers/<YYYY-MM-DD>/_latest.txt -> most recent run for that day
`

// Session is the directory layout of one run:
// <mount>/Transfers/<YYYY-MM-DD>/<HHMMSS>/.
type Session struct {
	Root      string
	DayDir    string
	Dir       string
	StartedAt time.Time
}

// NewSession derives the session layout from the local wall clock at start.
// Two runs started in the same second share a directory.
func NewSession(destMount string, startedAt time.Time) Session {
	local := startedAt.Local()
	root := filepath.Join(destMount, TransfersDirName)
	dayDir := filepath.Join(root, local.Format(dayLayout))

	return Session{
		Root:      root,
		DayDir:    dayDir,
		Dir:       filepath.Join(dayDir, local.Format(sessionLayout)),
		StartedAt: startedAt,
	}
}

// DestinationFor maps an entry to its place in the session: folder-pick
// entries keep their tree under Folders/, loose files land in Files/.
func (s Session) DestinationFor(entry FileEntry) string {
	if entry.FromFolder() {
		return filepath.Join(s.Dir, FoldersDirName, entry.FolderRelativePath)
	}

	return filepath.Join(s.Dir, FilesDirName, filepath.Base(entry.SourcePath))
}

// ManifestPath is where the manifest is written at the end of the run.
func (s Session) ManifestPath() string {
	return filepath.Join(s.Dir, ManifestFileName)
}

// LogPath is where the optional per-session log goes.
func (s Session) LogPath() string {
	return filepath.Join(s.Dir, SessionLogName)
}

// Prepare creates the session directory, writes README.txt if it is
// missing, and points both _latest.txt files at the session. README failures
// are ignored; everything else is fatal.
func (s Session) Prepare(fs filesystem.FileSystem) error {
	err := fs.MkdirAll(s.Dir, dirPermissions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionSetup, err)
	}

	readme := filepath.Join(s.Root, ReadmeFileName)
	if exists, err := fs.Exists(readme); err == nil && !exists {
		_ = fs.WriteFile(readme, []byte(readmeText), filePermissions)
	}

	for _, dir := range []string{s.Root, s.DayDir} {
		err = fs.WriteFile(filepath.Join(dir, LatestFileName), []byte(s.Dir), filePermissions)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSessionSetup, err)
		}
	}

	return nil
}

// WriteManifest writes rows as indented JSON. It is called once per run.
func (s Session) WriteManifest(fs filesystem.FileSystem, rows []ManifestRow) error {
	if rows == nil {
		rows = []ManifestRow{}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrManifestWrite, err)
	}

	err = fs.WriteFile(s.ManifestPath(), data, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrManifestWrite, err)
	}

	return nil
}
