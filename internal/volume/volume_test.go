//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package volume_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/transfer-pilot/internal/volume"
)

const linuxDF = `Filesystem     1K-blocks     Used Available Use% Mounted on
/dev/sda1       98303412 51234567  42068845  55% /
tmpfs             816108     1800    814308   1% /run
short line
/dev/sdb1      976760000        0 976760000   0% /media/usb drive
`

const macDF = `Filesystem     1024-blocks      Used Available Capacity iused      ifree %iused  Mounted on
/dev/disk3s1s1   482797652  10034236 219735660     5%  403755 2197356600    0%   /
/dev/disk5s1     124999680  62499840  62499840    50%       1          0  100%   /Volumes/SANDISK
`

func TestParseDFTable_Linux(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	vols := volume.ParseDFTable([]byte(linuxDF))

	g.Expect(vols).Should(HaveLen(3))
	g.Expect(vols[0].MountPoint).Should(Equal("/"))
	g.Expect(vols[0].Name).Should(Equal("/dev/sda1"))
	g.Expect(vols[0].AvailBytes).Should(Equal(uint64(42068845) * 1024))
	g.Expect(vols[0].TotalBytes).Should(Equal(uint64(98303412) * 1024))
	g.Expect(vols[0].FSType).Should(BeNil())
	g.Expect(vols[0].Removable).Should(BeNil())
	g.Expect(vols[1].MountPoint).Should(Equal("/run"))
	// Whitespace in a mount point splits it; the last column wins.
	g.Expect(vols[2].MountPoint).Should(Equal("drive"))
}

func TestParseDFTable_MacOS(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	vols := volume.ParseDFTable([]byte(macDF))

	usb, ok := volume.Find(vols, "/Volumes/SANDISK")
	g.Expect(ok).Should(BeTrue())
	g.Expect(usb.AvailBytes).Should(Equal(uint64(62499840) * 1024))

	g.Expect(usb.Name).Should(Equal("/dev/disk5s1"))

	_, ok = volume.Find(vols, "/nowhere")
	g.Expect(ok).Should(BeFalse())
}

func TestParseDFAvailable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(volume.ParseDFAvailable([]byte(linuxDF))).Should(Equal(uint64(42068845) * 1024))
	g.Expect(volume.ParseDFAvailable([]byte("Filesystem 1K-blocks Used Available\n"))).Should(BeZero())
	g.Expect(volume.ParseDFAvailable([]byte("header\n/dev/x 1 2\n"))).Should(BeZero())
	g.Expect(volume.ParseDFAvailable([]byte("header\n/dev/x 1 2 lots 5% /\n"))).Should(BeZero())
	g.Expect(volume.ParseDFAvailable(nil)).Should(BeZero())
}

func TestDFProbe_UsesRunnerAndSwallowsFailures(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var gotArgs []string

	probe := &volume.DFProbe{Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte(macDF), nil
	}}

	g.Expect(probe.AvailableBytes(context.Background(), "/Volumes/SANDISK")).
		Should(Equal(uint64(219735660) * 1024))
	g.Expect(gotArgs).Should(Equal([]string{"df", "-k", "/Volumes/SANDISK"}))

	failing := &volume.DFProbe{Run: func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("df not found")
	}}

	g.Expect(failing.AvailableBytes(context.Background(), "/")).Should(BeZero())

	_, err := failing.List(context.Background())
	g.Expect(err).Should(MatchError("df not found"))
}

func TestDFProbe_Listed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	probe := &volume.DFProbe{Run: func(context.Context, string, ...string) ([]byte, error) {
		return []byte(macDF), nil
	}}

	g.Expect(probe.Listed(context.Background(), "/Volumes/SANDISK")).Should(BeTrue())
	g.Expect(probe.Listed(context.Background(), "/Volumes/SANDISK/")).Should(BeTrue())
	g.Expect(probe.Listed(context.Background(), "/Volumes/SANDISK/Transfers")).Should(BeFalse())

	failing := &volume.DFProbe{Run: func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("df not found")
	}}

	g.Expect(failing.Listed(context.Background(), "/anywhere")).Should(BeTrue())
}

func TestFixedAndSpaceFunc(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(volume.Fixed(42).AvailableBytes(context.Background(), "/")).Should(Equal(uint64(42)))
	g.Expect(volume.SpaceFunc(func(context.Context, string) uint64 { return 7 }).
		AvailableBytes(context.Background(), "/")).Should(Equal(uint64(7)))
}

func TestStatfsProbe(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	probe := volume.StatfsProbe{}

	g.Expect(probe.AvailableBytes(context.Background(), "/definitely/not/a/mount")).Should(BeZero())

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		g.Expect(probe.AvailableBytes(context.Background(), t.TempDir())).Should(BeNumerically(">", 0))
	}
}
