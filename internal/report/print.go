package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lakshaymaurya-felt/reclaim/internal/core"
	"github.com/lakshaymaurya-felt/reclaim/internal/ui"
)

// UsageRow is one line of the before/after table.
type UsageRow struct {
	Path   string
	Before int64
	After  int64
}

// Freed is the space released below the path, never negative.
func (r UsageRow) Freed() int64 {
	if r.After >= r.Before {
		return 0
	}
	return r.Before - r.After
}

// Compare joins two snapshots by path and sorts the rows by their
// before-size, largest first. A path missing afterwards counts as empty.
func Compare(before, after []UsageSnapshot) []UsageRow {
	afterByPath := make(map[string]int64, len(after))
	for _, s := range after {
		afterByPath[s.Path] = s.Bytes
	}

	rows := make([]UsageRow, 0, len(before))
	for _, s := range before {
		rows = append(rows, UsageRow{Path: s.Path, Before: s.Bytes, After: afterByPath[s.Path]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Before > rows[j].Before
	})
	return rows
}

// PrintUsage writes the before/after table.
func PrintUsage(w io.Writer, before, after []UsageSnapshot) {
	rows := Compare(before, after)
	if len(rows) == 0 {
		return
	}

	t := newTable("PATH", "BEFORE", "AFTER", "FREED")
	for _, r := range rows {
		t.Row(r.Path, core.FormatSize(r.Before), core.FormatSize(r.After), core.FormatSize(r.Freed()))
	}
	fmt.Fprintln(w, t.Render())
}

// PrintSnapshot writes a single usage table sorted largest first.
func PrintSnapshot(w io.Writer, snaps []UsageSnapshot) {
	sorted := append([]UsageSnapshot(nil), snaps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bytes > sorted[j].Bytes
	})

	t := newTable("PATH", "USED")
	for _, s := range sorted {
		t.Row(s.Path, core.FormatSize(s.Bytes))
	}
	fmt.Fprintln(w, t.Render())
}

// PrintFilesystem writes the filesystem line, with a before/after delta
// when both readings are available.
func PrintFilesystem(w io.Writer, before, after *FilesystemUsage) {
	switch {
	case before != nil && after != nil:
		var gained int64
		if after.Free > before.Free {
			gained = int64(after.Free - before.Free)
		}
		fmt.Fprintf(w, "Filesystem %s: %s free of %s (was %s, +%s)\n",
			after.Mountpoint,
			core.FormatSize(int64(after.Free)),
			core.FormatSize(int64(after.Total)),
			core.FormatSize(int64(before.Free)),
			core.FormatSize(gained))
	case after != nil:
		fmt.Fprintf(w, "Filesystem %s: %s free of %s\n",
			after.Mountpoint, core.FormatSize(int64(after.Free)), core.FormatSize(int64(after.Total)))
	case before != nil:
		fmt.Fprintf(w, "Filesystem %s: %s free of %s\n",
			before.Mountpoint, core.FormatSize(int64(before.Free)), core.FormatSize(int64(before.Total)))
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(ui.TableBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.HeaderStyle()
			}
			return ui.CellStyle()
		})
}
