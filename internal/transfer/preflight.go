package transfer

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/joe/transfer-pilot/internal/classify"
	"github.com/joe/transfer-pilot/internal/pick"
)

// Report is the read-only capacity and category summary shown before a run.
// DestAvailBytes may be stale by the time the transfer starts.
type Report struct {
	TotalFiles     uint64            `json:"total_files"`
	TotalFolders   uint64            `json:"total_folders"`
	TotalBytes     uint64            `json:"total_bytes"`
	DestAvailBytes uint64            `json:"dest_avail_bytes"`
	WillFit        bool              `json:"will_fit"`
	ByCategory     map[string]uint64 `json:"by_category"`
	ByExtension    map[string]uint64 `json:"by_extension"`
	// Picks has one measured queue entry per pick, in pick order. Picks that
	// resolve to nothing have zero files.
	Picks []pick.QueueItem `json:"picks"`
}

// Preflight scans items and aggregates sizes, categories and extensions.
// Any entry whose size cannot be read aborts the whole report. Free space
// comes from the engine's SpaceProvider; an unknown answer counts as zero.
func (e *Engine) Preflight(ctx context.Context, items []pick.Item, destMount string) (*Report, error) {
	entries, err := Scan(e.FileOps.SourceFS, items, e.Filter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalFiles:   uint64(len(entries)),
		TotalFolders: uint64(lo.CountBy(items, func(item pick.Item) bool { return item.Kind == pick.Folder })),
		ByCategory:   make(map[string]uint64),
		ByExtension:  make(map[string]uint64),
	}

	pickFiles := make([]uint64, len(items))
	pickBytes := make([]uint64, len(items))

	for _, entry := range entries {
		size, err := e.sourceSize(entry.SourcePath)
		if err != nil {
			return nil, err
		}

		report.TotalBytes = addSaturating(report.TotalBytes, size)
		pickFiles[entry.Pick]++
		pickBytes[entry.Pick] = addSaturating(pickBytes[entry.Pick], size)

		category, ext := classify.Classify(entry.SourcePath)
		report.ByCategory[string(category)]++
		report.ByExtension["."+ext]++
	}

	report.Picks = lo.Map(items, func(item pick.Item, i int) pick.QueueItem {
		return pick.Measured(item, pickFiles[i], pickBytes[i])
	})

	if e.Space != nil {
		report.DestAvailBytes = e.Space.AvailableBytes(ctx, destMount)
	}

	report.WillFit = report.DestAvailBytes >= report.TotalBytes

	e.logger().WithFields(logrus.Fields{
		"files":     report.TotalFiles,
		"bytes":     report.TotalBytes,
		"available": report.DestAvailBytes,
		"will_fit":  report.WillFit,
	}).Debug("Preflight complete")

	return report, nil
}

// sourceSize stats a scanned entry. Failure is fatal to the caller.
func (e *Engine) sourceSize(path string) (uint64, error) {
	info, err := e.FileOps.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMetadata, err)
	}

	return uint64(info.Size()), nil //nolint:gosec // file sizes are non-negative
}
