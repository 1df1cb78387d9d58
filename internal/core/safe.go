package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/reclaim/internal/config"
)

// ErrProtectedPath is returned when a deletion targets a never-delete path.
var ErrProtectedPath = errors.New("refusing to delete protected path")

// IsProtected reports whether path is one of the never-delete roots.
func IsProtected(path string) bool {
	cleaned := filepath.Clean(path)
	for _, p := range config.GetNeverDeletePaths() {
		if cleaned == p {
			return true
		}
	}
	return false
}

// SafeDelete removes a file or directory tree and returns the number of
// bytes it occupied. Relative paths and never-delete roots are refused.
// A path that is already gone frees nothing and is not an error.
func SafeDelete(path string) (int64, error) {
	if !filepath.IsAbs(path) {
		return 0, fmt.Errorf("%w: %q is not absolute", ErrProtectedPath, path)
	}
	if IsProtected(path) {
		return 0, fmt.Errorf("%w: %s", ErrProtectedPath, path)
	}

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	size := info.Size()
	if info.IsDir() {
		size = treeSize(path)
	}

	if err := os.RemoveAll(path); err != nil {
		return 0, fmt.Errorf("remove %s: %w", path, err)
	}
	return size, nil
}

// treeSize sums regular file sizes below root without following symlinks.
// Unreadable entries count as zero.
func treeSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil && info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
