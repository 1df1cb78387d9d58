package clean

import (
	"errors"
	"io/fs"
	"strings"
	"time"
)

// ScanTempFiles returns regular files under the given temp roots last
// modified more than maxAge before now. Missing roots are skipped; the
// error is fs.ErrNotExist only when none of them exist.
//
// systemd-private-* directories belong to running services and are never
// entered. Sockets, FIFOs and symlinks are ignored.
func ScanTempFiles(roots []string, maxAge time.Duration, now time.Time) ([]CleanItem, error) {
	var items []CleanItem
	found := 0
	skip := func(_ string, name string) bool {
		return strings.HasPrefix(name, "systemd-private-") || strings.HasPrefix(name, "snap-private-tmp")
	}

	for _, root := range roots {
		if err := checkRoot(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return items, err
		}
		found++

		err := walkFiles(root, skip, func(path string, info fs.FileInfo) {
			if !olderThan(info.ModTime(), maxAge, now) {
				return
			}
			items = append(items, CleanItem{
				Path:    path,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		})
		if err != nil {
			logger.Debugf("scan %s: %v", root, err)
		}
	}

	if found == 0 {
		return nil, fs.ErrNotExist
	}
	return items, nil
}
