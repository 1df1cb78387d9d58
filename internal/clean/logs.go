package clean

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// rotatedSuffixes mark compressed, renamed or plain log files.
var rotatedSuffixes = []string{".gz", ".xz", ".bz2", ".zst", ".old", ".log"}

// numberedSuffix matches logrotate's numbered copies (syslog.1, auth.log.2).
var numberedSuffix = regexp.MustCompile(`\.\d+$`)

// IsRotatedLog reports whether name looks like a rotated or stale log file.
func IsRotatedLog(name string) bool {
	for _, s := range rotatedSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return numberedSuffix.MatchString(name)
}

// ScanRotatedLogs returns log files under root last modified more than
// maxAge before now. Directories listed in exclude, such as the systemd
// journal owned by journalctl, are not entered.
func ScanRotatedLogs(root string, maxAge time.Duration, now time.Time, exclude ...string) ([]CleanItem, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(exclude))
	for _, dir := range exclude {
		if dir != "" {
			excluded[filepath.Clean(dir)] = true
		}
	}

	var items []CleanItem
	skip := func(path, _ string) bool { return excluded[path] }
	err := walkFiles(root, skip, func(path string, info fs.FileInfo) {
		if !IsRotatedLog(filepath.Base(path)) || !olderThan(info.ModTime(), maxAge, now) {
			return
		}
		items = append(items, CleanItem{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	})
	return items, err
}
