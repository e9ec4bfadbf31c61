//nolint:varnamelen // Test files use idiomatic short variable names (t, g, fs, etc.)
package transfer_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/transfer-pilot/internal/pick"
	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/pkg/filesystem"
)

func TestScan_PreservesPickOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewInMemoryFileSystem()
	writeFile(t, fs, "/in/z.txt", []byte("z"))
	writeFile(t, fs, "/in/dir/one.txt", []byte("1"))
	writeFile(t, fs, "/in/a.txt", []byte("a"))

	items := append(pick.Files("/in/z.txt"), pick.Folders("/in/dir")...)
	items = append(items, pick.Files("/in/a.txt")...)

	entries, err := transfer.Scan(fs, items, nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(Equal([]transfer.FileEntry{
		{SourcePath: "/in/z.txt"},
		{SourcePath: "/in/dir/one.txt", FolderRelativePath: filepath.Join("dir", "one.txt"), Pick: 1},
		{SourcePath: "/in/a.txt", Pick: 2},
	}))
	g.Expect(entries[0].FromFolder()).Should(BeFalse())
	g.Expect(entries[1].FromFolder()).Should(BeTrue())
}

func TestScan_KindMismatchIsDropped(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewInMemoryFileSystem()
	writeFile(t, fs, "/in/dir/file.txt", []byte("f"))

	entries, err := transfer.Scan(fs, []pick.Item{
		{Kind: pick.File, Path: "/in/dir"},
		{Kind: pick.Folder, Path: "/in/dir/file.txt"},
	}, nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(BeEmpty())
}

func TestScan_EmptyFolderContributesNothing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewInMemoryFileSystem()
	g.Expect(fs.MkdirAll("/in/empty", 0o755)).Should(Succeed())

	entries, err := transfer.Scan(fs, pick.Folders("/in/empty"), nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(BeEmpty())
}

func TestScan_SymlinksOnDisk(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	g.Expect(os.WriteFile(target, []byte("t"), 0o600)).Should(Succeed())

	link := filepath.Join(dir, "link.txt")
	g.Expect(os.Symlink(target, link)).Should(Succeed())

	folder := filepath.Join(dir, "folder")
	g.Expect(os.MkdirAll(folder, 0o750)).Should(Succeed())
	g.Expect(os.WriteFile(filepath.Join(folder, "real.txt"), []byte("r"), 0o600)).Should(Succeed())
	g.Expect(os.Symlink(target, filepath.Join(folder, "inner-link.txt"))).Should(Succeed())

	fs := filesystem.NewRealFileSystem()

	// A picked symlink is followed; links inside a picked folder are not entries.
	entries, err := transfer.Scan(fs, append(pick.Files(link), pick.Folders(folder)...), nil)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(Equal([]transfer.FileEntry{
		{SourcePath: link},
		{SourcePath: filepath.Join(folder, "real.txt"), FolderRelativePath: filepath.Join("folder", "real.txt"), Pick: 1},
	}))
}

func TestScan_FilterSeesPathInsideFolder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewInMemoryFileSystem()
	writeFile(t, fs, "/in/proj/src/main.go", []byte("m"))
	writeFile(t, fs, "/in/proj/node_modules/lib/index.js", []byte("i"))

	filter, err := transfer.NewExcludeFilter("node_modules/**")
	g.Expect(err).ShouldNot(HaveOccurred())

	entries, err := transfer.Scan(fs, pick.Folders("/in/proj"), filter)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(HaveLen(1))
	g.Expect(entries[0].FolderRelativePath).Should(Equal(filepath.Join("proj", "src", "main.go")))
}
