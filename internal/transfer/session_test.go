//nolint:varnamelen // Test files use idiomatic short variable names (t, g, fs, etc.)
package transfer_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/pkg/filesystem"
)

func TestNewSession_Layout(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session := transfer.NewSession("/mnt/usb", time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local))

	g.Expect(session.Root).Should(Equal("/mnt/usb/Transfers"))
	g.Expect(session.DayDir).Should(Equal("/mnt/usb/Transfers/2024-01-02"))
	g.Expect(session.Dir).Should(Equal("/mnt/usb/Transfers/2024-01-02/030405"))
	g.Expect(session.ManifestPath()).Should(Equal("/mnt/usb/Transfers/2024-01-02/030405/manifest.json"))
	g.Expect(session.LogPath()).Should(Equal("/mnt/usb/Transfers/2024-01-02/030405/transfer.log"))
}

func TestSession_DestinationFor(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	session := transfer.NewSession("/mnt/usb", sessionStart)

	loose := session.DestinationFor(transfer.FileEntry{SourcePath: "/home/me/Desktop/todo.txt"})
	g.Expect(loose).Should(Equal(filepath.Join(session.Dir, "Files", "todo.txt")))

	nested := session.DestinationFor(transfer.FileEntry{
		SourcePath:         "/home/me/Pictures/trip/day1/a.jpg",
		FolderRelativePath: filepath.Join("trip", "day1", "a.jpg"),
	})
	g.Expect(nested).Should(Equal(filepath.Join(session.Dir, "Folders", "trip", "day1", "a.jpg")))
}

func TestSession_PrepareWritesReadmeOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewInMemoryFileSystem()
	first := transfer.NewSession(destMount, sessionStart)
	g.Expect(first.Prepare(fs)).Should(Succeed())

	readme := string(readFile(t, fs, filepath.Join(first.Root, "README.txt")))
	g.Expect(readme).Should(HavePrefix("TransferPilot output"))
	g.Expect(readme).Should(ContainSubstring("Transfers/_latest.txt -> most recent run folder"))

	second := transfer.NewSession(destMount, sessionStart.Add(24*time.Hour))
	g.Expect(second.Prepare(fs)).Should(Succeed())
	g.Expect(string(readFile(t, fs, filepath.Join(first.Root, "README.txt")))).Should(Equal(readme))

	// The global pointer follows the newest session, each day keeps its own.
	g.Expect(string(readFile(t, fs, filepath.Join(first.Root, "_latest.txt")))).Should(Equal(second.Dir))
	g.Expect(string(readFile(t, fs, filepath.Join(first.DayDir, "_latest.txt")))).Should(Equal(first.Dir))
	g.Expect(string(readFile(t, fs, filepath.Join(second.DayDir, "_latest.txt")))).Should(Equal(second.Dir))
}

func TestSession_WriteManifest(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewInMemoryFileSystem()
	session := transfer.NewSession(destMount, sessionStart)
	g.Expect(session.Prepare(fs)).Should(Succeed())

	msg := "verify failed: size mismatch"
	rows := []transfer.ManifestRow{
		{Source: "/a.txt", Dest: "/d/a.txt", Category: "Documents", Ext: "txt", Bytes: 3, Status: transfer.StatusCopied},
		{Source: "/b.bin", Dest: "/d/b.bin", Category: "Other", Ext: "bin", Bytes: 9, Status: transfer.StatusError, Error: &msg},
	}
	g.Expect(session.WriteManifest(fs, rows)).Should(Succeed())

	data := string(readFile(t, fs, session.ManifestPath()))
	g.Expect(strings.Split(data, "\n")[1]).Should(Equal("  {"))
	g.Expect(data).Should(ContainSubstring(`"error": null`))

	var decoded []transfer.ManifestRow
	g.Expect(json.Unmarshal([]byte(data), &decoded)).Should(Succeed())
	g.Expect(decoded).Should(Equal(rows))
}
