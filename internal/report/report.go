// Package report renders preflight reports, run summaries and volume lists
// as plain-text tables or JSON, for terminals without the TUI and for
// scripting.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/docker/go-units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/joe/transfer-pilot/internal/pick"
	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/volume"
	pkgerrors "github.com/joe/transfer-pilot/pkg/errors"
)

// Size renders a byte count with binary units ("1.5MiB").
func Size(n uint64) string {
	return units.BytesSize(float64(n))
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Preflight renders the totals, a per-category and a per-extension table,
// then one row per measured pick.
func Preflight(w io.Writer, r *transfer.Report) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Preflight"})
	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"Files", r.TotalFiles},
		{"Folders", r.TotalFolders},
		{"Total size", Size(r.TotalBytes)},
		{"Free on destination", Size(r.DestAvailBytes)},
		{"Will fit", yesNo(r.WillFit)},
	})

	counts := table.NewWriter()
	counts.AppendHeader(table.Row{"Category", "Files"})
	counts.AppendRows(countRows(r.ByCategory))
	counts.AppendSeparator()
	counts.AppendRow(table.Row{"Extension", "Files"})
	counts.AppendSeparator()
	counts.AppendRows(countRows(r.ByExtension))

	out := t.Render() + "\n" + counts.Render() + "\n"

	if len(r.Picks) > 0 {
		picks := table.NewWriter()
		picks.AppendHeader(table.Row{"Pick", "Kind", "Files", "Size"})
		picks.AppendRows(lo.Map(r.Picks, func(q pick.QueueItem, _ int) table.Row {
			return table.Row{q.Path, q.Kind, lo.FromPtr(q.FileCount), Size(lo.FromPtr(q.SizeBytes))}
		}))

		out += picks.Render() + "\n"
	}

	_, err := io.WriteString(w, out)
	if err != nil {
		return fmt.Errorf("failed to write preflight report: %w", err)
	}

	return nil
}

// Summary renders the outcome of a run.
func Summary(w io.Writer, s *transfer.Summary) error {
	t := table.NewWriter()

	title := "Transfer complete"
	if s.Cancelled {
		title = "Transfer cancelled"
	}

	t.AppendHeader(table.Row{title})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Copied", s.CopiedFiles},
		{"Moved", s.MovedFiles},
		{"Skipped", s.SkippedFiles},
		{"Errors", s.ErrorFiles},
		{"Size", Size(s.TotalBytes)},
		{"Duration", fmt.Sprintf("%.1fs", float64(s.DurationMS)/1000)}, //nolint:mnd // ms to s
		{"Session", s.OutputSessionDir},
	})

	_, err := fmt.Fprintln(w, t.Render())
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}

// Failures lists every error row with enriched suggestions. Nothing is
// written when no row failed.
func Failures(w io.Writer, rows []transfer.ManifestRow) error {
	failed := lo.Filter(rows, func(row transfer.ManifestRow, _ int) bool {
		return row.Status == transfer.StatusError && row.Error != nil
	})

	if len(failed) == 0 {
		return nil
	}

	enricher := pkgerrors.NewEnricher()

	var b strings.Builder

	fmt.Fprintf(&b, "%d file(s) failed:\n", len(failed))

	for _, row := range failed {
		enriched := enricher.Enrich(errors.New(*row.Error), row.Source)
		fmt.Fprintf(&b, "\n%s\n  %s\n", row.Source, *row.Error)

		if suggestions := pkgerrors.FormatSuggestions(enriched); suggestions != "" {
			fmt.Fprintf(&b, "%s\n", suggestions)
		}
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("failed to write failures: %w", err)
	}

	return nil
}

// Volumes renders mounted volumes sorted by mount point.
func Volumes(w io.Writer, vols []volume.Info) error {
	sorted := slices.Clone(vols)
	slices.SortFunc(sorted, func(a, b volume.Info) int { return strings.Compare(a.MountPoint, b.MountPoint) })

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Mount point", "Device", "Size", "Free"})
	t.AppendRows(lo.Map(sorted, func(v volume.Info, _ int) table.Row {
		return table.Row{v.MountPoint, v.Name, Size(v.TotalBytes), Size(v.AvailBytes)}
	}))

	_, err := fmt.Fprintln(w, t.Render())
	if err != nil {
		return fmt.Errorf("failed to write volumes: %w", err)
	}

	return nil
}

func countRows(counts map[string]uint64) []table.Row {
	keys := lo.Keys(counts)
	slices.Sort(keys)

	return lo.Map(keys, func(key string, _ int) table.Row {
		return table.Row{key, counts[key]}
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
