package clean

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("reclaim.clean")

// CleanItem is a single file or directory selected for removal.
type CleanItem struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// olderThan reports whether modTime lies strictly before now-maxAge.
func olderThan(modTime time.Time, maxAge time.Duration, now time.Time) bool {
	return now.Sub(modTime) > maxAge
}

// checkRoot returns the os.Stat error for a missing root so callers can
// test it with errors.Is(err, fs.ErrNotExist).
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "scan", Path: root, Err: fs.ErrInvalid}
	}
	return nil
}

// walkFiles visits every regular file below root. Unreadable subtrees are
// logged and skipped; skipDir may prune directories by name.
func walkFiles(root string, skipDir func(path, name string) bool, visit func(path string, info fs.FileInfo)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Debugf("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir != nil && skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Debugf("cannot stat %s: %v", path, err)
			return nil
		}
		visit(path, info)
		return nil
	})
}
