package analyze

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeSumsNestedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "big", "deep"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "small"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big", "deep", "a"), make([]byte, 700), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big", "b"), make([]byte, 300), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "small", "c"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top"), make([]byte, 5), 0o644))

	size, err := NewScanner(2).Size(root)
	require.NoError(t, err)
	assert.EqualValues(t, 1015, size)

	size, err = NewScanner(1).Size(filepath.Join(root, "big", "b"))
	require.NoError(t, err)
	assert.EqualValues(t, 300, size)
}

func TestSizeDoesNotFollowSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "huge"), make([]byte, 4096), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "link")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep"), make([]byte, 8), 0o644))

	size, err := NewScanner(0).Size(root)
	require.NoError(t, err)
	assert.Less(t, size, int64(4096))
	assert.GreaterOrEqual(t, size, int64(8))
}

func TestSizeReportsUnreadableSubtrees(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read every directory")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "secret"), make([]byte, 512), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "open"), make([]byte, 64), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	size, err := NewScanner(2).Size(root)
	assert.EqualValues(t, 64, size)

	var inc *IncompleteError
	require.True(t, errors.As(err, &inc))
	assert.Equal(t, 1, inc.Count)
	assert.Equal(t, []string{locked}, inc.Unreadable)
}

func TestSizeOfMissingPath(t *testing.T) {
	_, err := NewScanner(1).Size(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
