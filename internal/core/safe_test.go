package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDeleteRefusesProtectedRoots(t *testing.T) {
	for _, p := range []string{"/", "/boot", "/var/log", "/var/lib/dpkg/", "/usr"} {
		freed, err := SafeDelete(p)
		require.ErrorIs(t, err, ErrProtectedPath, p)
		assert.Zero(t, freed)
	}
}

func TestSafeDeleteRefusesRelativePaths(t *testing.T) {
	_, err := SafeDelete("var/log")
	require.ErrorIs(t, err, ErrProtectedPath)
}

func TestSafeDeleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.log")
	require.NoError(t, os.WriteFile(path, make([]byte, 1500), 0o644))

	freed, err := SafeDelete(path)
	require.NoError(t, err)
	assert.EqualValues(t, 1500, freed)
	assert.NoFileExists(t, path)
}

func TestSafeDeleteDirectorySumsTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "__pycache__")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pyc"), make([]byte, 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.pyc"), make([]byte, 50), 0o644))

	freed, err := SafeDelete(dir)
	require.NoError(t, err)
	assert.EqualValues(t, 150, freed)
	assert.NoDirExists(t, dir)
}

func TestSafeDeleteMissingPathIsNoop(t *testing.T) {
	freed, err := SafeDelete(filepath.Join(t.TempDir(), "gone"))
	require.NoError(t, err)
	assert.Zero(t, freed)
}
