package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDirectory(t *testing.T) {
	dir := t.TempDir()

	ok, err := IsDirectory(dir)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsDirectory(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))
	ok, err = IsDirectory(file)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, FileExists(file))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.toml")

	require.NoError(t, WriteFileAtomic(path, []byte("a = 1\n"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("a = 2\n"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a = 2\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}
