// Package report captures disk usage around a reclamation run and prints
// the before/after comparison.
package report

import (
	"context"
	"errors"
	"io/fs"

	"github.com/juju/loggo"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/lakshaymaurya-felt/reclaim/internal/analyze"
)

var logger = loggo.GetLogger("reclaim.report")

// UsageSnapshot is the space used below one path at one moment.
type UsageSnapshot struct {
	Path  string
	Bytes int64
}

// FilesystemUsage is the df view of one mounted filesystem.
type FilesystemUsage struct {
	Mountpoint string
	Total      uint64
	Used       uint64
	Free       uint64
}

// DirSizer measures the space used below a path.
type DirSizer interface {
	Size(path string) (int64, error)
}

var _ DirSizer = (*analyze.Scanner)(nil)

// Capture measures each path in order. Paths that do not exist are left
// out. A path with unreadable entries is kept with its partial size and a
// warning; any other error drops the path with a warning.
func Capture(sizer DirSizer, paths []string) []UsageSnapshot {
	snaps := make([]UsageSnapshot, 0, len(paths))
	for _, p := range paths {
		size, err := sizer.Size(p)
		var incomplete *analyze.IncompleteError
		switch {
		case err == nil:
		case errors.As(err, &incomplete):
			logger.Warningf("%s: size undercounted, %d entries unreadable (first: %s)",
				p, incomplete.Count, incomplete.Unreadable[0])
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			logger.Warningf("cannot measure %s: %v", p, err)
			continue
		}
		snaps = append(snaps, UsageSnapshot{Path: p, Bytes: size})
	}
	return snaps
}

// CaptureFilesystem reports usage of the filesystem holding path.
func CaptureFilesystem(ctx context.Context, path string) (FilesystemUsage, error) {
	st, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return FilesystemUsage{}, err
	}
	return FilesystemUsage{
		Mountpoint: st.Path,
		Total:      st.Total,
		Used:       st.Used,
		Free:       st.Free,
	}, nil
}
