package clean

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScanBytecode returns Python bytecode caches under root: every
// __pycache__ directory, plus stray .pyc/.pyo files outside one.
// Version-control metadata is not entered.
func ScanBytecode(root string) ([]CleanItem, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	var items []CleanItem
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Debugf("skipping %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			switch d.Name() {
			case ".git", ".hg", ".svn":
				return filepath.SkipDir
			case "__pycache__":
				// A root that is itself a cache is emptied file by
				// file below, never removed whole.
				if path == root {
					return nil
				}
				items = append(items, CleanItem{Path: path, Size: dirSize(path)})
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !d.Type().IsRegular() || !(strings.HasSuffix(name, ".pyc") || strings.HasSuffix(name, ".pyo")) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		items = append(items, CleanItem{Path: path, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	return items, err
}

func dirSize(root string) int64 {
	var total int64
	_ = walkFiles(root, nil, func(_ string, info os.FileInfo) {
		total += info.Size()
	})
	return total
}
