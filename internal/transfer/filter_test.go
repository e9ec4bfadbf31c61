//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package transfer_test

import (
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/transfer-pilot/internal/transfer"
)

func TestExcludeFilter_Matching(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filter, err := transfer.NewExcludeFilter("*.TMP", ".DS_Store", "cache/**", "")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(filter.Patterns()).Should(Equal([]string{"*.tmp", ".ds_store", "cache/**"}))

	g.Expect(filter.ShouldInclude("a.tmp")).Should(BeFalse())
	g.Expect(filter.ShouldInclude("deep/inside/b.Tmp")).Should(BeFalse())
	g.Expect(filter.ShouldInclude("photos/.DS_Store")).Should(BeFalse())
	g.Expect(filter.ShouldInclude("cache/x/y.bin")).Should(BeFalse())
	g.Expect(filter.ShouldInclude("photos/cache.jpg")).Should(BeTrue())
	g.Expect(filter.ShouldInclude("notes.txt")).Should(BeTrue())
}

func TestExcludeFilter_EmptyIncludesEverything(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	filter, err := transfer.NewExcludeFilter()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(filter.ShouldInclude("anything.tmp")).Should(BeTrue())

	var nilFilter *transfer.ExcludeFilter
	g.Expect(nilFilter.ShouldInclude("anything")).Should(BeTrue())
}

func TestExcludeFilter_RejectsBadPattern(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := transfer.NewExcludeFilter("[unclosed")
	g.Expect(err).Should(MatchError(doublestar.ErrBadPattern))
	g.Expect(err.Error()).Should(ContainSubstring("[unclosed"))
}
