package host

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// journalUsagePattern matches the size in
// "Archived and active journals take up 1.2G in the file system."
var journalUsagePattern = regexp.MustCompile(`take up ([0-9.]+)\s*([KMGTPE]?)B?`)

// Journal adapts journalctl.
type Journal struct {
	exec Executor
}

// NewJournal returns a journalctl adapter.
func NewJournal(e Executor) *Journal {
	return &Journal{exec: e}
}

// Available reports whether journalctl is installed.
func (j *Journal) Available() bool {
	return available(j.exec, "journalctl")
}

// DiskUsage returns the bytes used by archived and active journal files.
func (j *Journal) DiskUsage(ctx context.Context) (int64, error) {
	out, err := j.exec.Run(ctx, "journalctl", "--disk-usage")
	if err != nil {
		return 0, fmt.Errorf("journal disk usage: %w", err)
	}
	return parseJournalUsage(string(out))
}

// Vacuum deletes archived journal files older than days or beyond maxBytes.
func (j *Journal) Vacuum(ctx context.Context, days int, maxBytes int64) error {
	_, err := j.exec.Run(ctx, "journalctl",
		fmt.Sprintf("--vacuum-time=%dd", days),
		fmt.Sprintf("--vacuum-size=%dM", maxBytes/humanize.MiByte),
	)
	return err
}

// parseJournalUsage converts journalctl's IEC size ("24.0M", "1.2G", "8.0K")
// into bytes.
func parseJournalUsage(out string) (int64, error) {
	m := journalUsagePattern.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("unrecognised journalctl output: %q", truncate(strings.TrimSpace(out), maxErrorOutput))
	}
	unit := "B"
	if m[2] != "" {
		unit = m[2] + "iB"
	}
	n, err := humanize.ParseBytes(m[1] + unit)
	if err != nil {
		return 0, fmt.Errorf("parse journal size %q: %w", m[1]+m[2], err)
	}
	return int64(n), nil
}
