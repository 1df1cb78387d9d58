package clean

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func writeAged(t *testing.T, path string, size int, age time.Duration, now time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	mtime := now.Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func names(items []CleanItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, filepath.Base(it.Path))
	}
	sort.Strings(out)
	return out
}

func agedLogDir(t *testing.T, now time.Time) string {
	root := t.TempDir()
	for _, age := range []int{1, 4, 8, 40} {
		writeAged(t, filepath.Join(root, "app", "day"+itoa(age)+".log"), 10, time.Duration(age)*day, now)
	}
	return root
}

func itoa(n int) string {
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func TestScanRotatedLogsConservativeCutoff(t *testing.T) {
	now := time.Now()
	root := agedLogDir(t, now)

	items, err := ScanRotatedLogs(root, 7*day, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"day08.log", "day40.log"}, names(items))
}

func TestScanRotatedLogsAggressiveCutoffIsSuperset(t *testing.T) {
	now := time.Now()
	root := agedLogDir(t, now)

	conservative, err := ScanRotatedLogs(root, 7*day, now)
	require.NoError(t, err)
	aggressive, err := ScanRotatedLogs(root, 3*day, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"day04.log", "day08.log", "day40.log"}, names(aggressive))
	assert.Subset(t, names(aggressive), names(conservative))
}

func TestScanRotatedLogsSkipsJournalAndActiveNames(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	writeAged(t, filepath.Join(root, "syslog.2.gz"), 10, 30*day, now)
	writeAged(t, filepath.Join(root, "auth.log.1"), 10, 30*day, now)
	writeAged(t, filepath.Join(root, "wtmp"), 10, 30*day, now)
	writeAged(t, filepath.Join(root, "journal", "abc", "system@x.journal.old"), 10, 30*day, now)
	writeAged(t, filepath.Join(root, "app", "journal", "audit.log.1"), 10, 30*day, now)

	items, err := ScanRotatedLogs(root, 7*day, now, filepath.Join(root, "journal"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"audit.log.1", "auth.log.1", "syslog.2.gz"}, names(items))
}

func TestScanRotatedLogsMissingRoot(t *testing.T) {
	_, err := ScanRotatedLogs(filepath.Join(t.TempDir(), "nope"), day, time.Now())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestIsRotatedLog(t *testing.T) {
	for _, n := range []string{"syslog.1", "kern.log", "dmesg.0", "apt/history.log.3.gz", "x.old", "y.zst"} {
		assert.True(t, IsRotatedLog(n), n)
	}
	for _, n := range []string{"wtmp", "lastlog", "syslog", "faillog.conf"} {
		assert.False(t, IsRotatedLog(n), n)
	}
}

func TestScanTempFiles(t *testing.T) {
	now := time.Now()
	tmp := t.TempDir()
	writeAged(t, filepath.Join(tmp, "old.bin"), 100, 10*day, now)
	writeAged(t, filepath.Join(tmp, "fresh.bin"), 100, time.Hour, now)
	writeAged(t, filepath.Join(tmp, "systemd-private-abc", "tmp", "svc.state"), 100, 30*day, now)
	writeAged(t, filepath.Join(tmp, "nested", "older.txt"), 5, 5*day, now)

	items, err := ScanTempFiles([]string{tmp, filepath.Join(tmp, "missing")}, 3*day, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.bin", "older.txt"}, names(items))

	items, err = ScanTempFiles([]string{tmp}, 7*day, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.bin"}, names(items))
}

func TestScanTempFilesNoRoots(t *testing.T) {
	_, err := ScanTempFiles([]string{filepath.Join(t.TempDir(), "missing")}, day, time.Now())
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestScanBytecode(t *testing.T) {
	now := time.Now()
	root := t.TempDir()
	writeAged(t, filepath.Join(root, "pkg", "__pycache__", "mod.cpython-311.pyc"), 70, 0, now)
	writeAged(t, filepath.Join(root, "pkg", "__pycache__", "util.cpython-311.pyc"), 30, 0, now)
	writeAged(t, filepath.Join(root, "legacy", "old.pyc"), 20, 0, now)
	writeAged(t, filepath.Join(root, "pkg", "mod.py"), 500, 0, now)
	writeAged(t, filepath.Join(root, ".git", "objects", "x.pyc"), 5, 0, now)

	items, err := ScanBytecode(root)
	require.NoError(t, err)
	require.Len(t, items, 2)

	sizes := map[string]int64{}
	for _, it := range items {
		sizes[filepath.Base(it.Path)] = it.Size
	}
	assert.Equal(t, map[string]int64{"__pycache__": 100, "old.pyc": 20}, sizes)
}

func TestScanBytecodeMissingRoot(t *testing.T) {
	_, err := ScanBytecode(filepath.Join(t.TempDir(), "project"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestScanBytecodeRootNamedPycacheIsNotSelected(t *testing.T) {
	now := time.Now()
	root := filepath.Join(t.TempDir(), "__pycache__")
	writeAged(t, filepath.Join(root, "a.cpython-311.pyc"), 40, 0, now)
	writeAged(t, filepath.Join(root, "nested", "__pycache__", "b.cpython-311.pyc"), 10, 0, now)

	items, err := ScanBytecode(root)
	require.NoError(t, err)

	var paths []string
	for _, it := range items {
		paths = append(paths, it.Path)
	}
	assert.NotContains(t, paths, root)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.cpython-311.pyc"),
		filepath.Join(root, "nested", "__pycache__"),
	}, paths)
}
