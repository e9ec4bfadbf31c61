package transfer

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Status is the final outcome of one entry.
type Status string

// Exported constants.
const (
	StatusCopied    Status = "copied"
	StatusMoved     Status = "moved"
	StatusSkipped   Status = "skipped"
	StatusError     Status = "error"
	StatusCancelled Status = "cancelled"
)

// ManifestRow records what happened to one entry. Error is set only for
// StatusError.
type ManifestRow struct {
	Source   string  `json:"source"`
	Dest     string  `json:"dest"`
	Category string  `json:"category"`
	Ext      string  `json:"ext"`
	Bytes    uint64  `json:"bytes"`
	Status   Status  `json:"status"`
	Error    *string `json:"error"`
}

// Summary is returned to the caller at the end of a run. Everything except
// the timestamps is derived from the manifest rows.
type Summary struct {
	StartedAt        string `json:"started_at"`
	FinishedAt       string `json:"finished_at"`
	DurationMS       uint64 `json:"duration_ms"`
	TotalFiles       uint64 `json:"total_files"`
	TotalBytes       uint64 `json:"total_bytes"`
	CopiedFiles      uint64 `json:"copied_files"`
	MovedFiles       uint64 `json:"moved_files"`
	SkippedFiles     uint64 `json:"skipped_files"`
	ErrorFiles       uint64 `json:"error_files"`
	OutputSessionDir string `json:"output_session_dir"`
	Cancelled        bool   `json:"cancelled"`
}

func newSummary(rows []ManifestRow, totalBytes uint64, session Session, finishedAt time.Time, cancelled bool) *Summary {
	count := func(status Status) uint64 {
		return uint64(lo.CountBy(rows, func(row ManifestRow) bool { return row.Status == status }))
	}

	summary := &Summary{
		StartedAt:        session.StartedAt.Local().Format(time.RFC3339),
		FinishedAt:       finishedAt.Local().Format(time.RFC3339),
		DurationMS:       uint64(max(finishedAt.Sub(session.StartedAt).Milliseconds(), 0)), //nolint:gosec // clamped
		TotalBytes:       totalBytes,
		CopiedFiles:      count(StatusCopied),
		MovedFiles:       count(StatusMoved),
		SkippedFiles:     count(StatusSkipped),
		ErrorFiles:       count(StatusError),
		OutputSessionDir: session.Dir,
		Cancelled:        cancelled,
	}

	summary.TotalFiles = summary.CopiedFiles + summary.MovedFiles + summary.SkippedFiles + summary.ErrorFiles

	return summary
}

// String is a one-line human summary.
func (s *Summary) String() string {
	return fmt.Sprintf("%d copied, %d moved, %d skipped, %d errors in %s",
		s.CopiedFiles, s.MovedFiles, s.SkippedFiles, s.ErrorFiles, s.OutputSessionDir)
}
