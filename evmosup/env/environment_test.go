package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsInitialized(t *testing.T) {
	dir := t.TempDir()

	require.False(t, IsInitialized(filepath.Join(dir, "missing")))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0755))
	require.True(t, IsInitialized(empty), "directory existence alone gates the pipeline")

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	require.False(t, IsInitialized(file))
}

func TestPaths(t *testing.T) {
	p := Paths{Home: "/home/dev/.evmosd"}
	require.Equal(t, "/home/dev/.evmosd/config/genesis.json", p.GenesisJSON())
	require.Equal(t, "/home/dev/.evmosd/config/app.toml", p.AppTOML())
	require.Equal(t, "/home/dev/.evmosd/config/client.toml", p.ClientTOML())
	require.Equal(t, "/home/dev/.evmosd/config/gentx", p.GentxDir())
}

func TestReset(t *testing.T) {
	home := filepath.Join(t.TempDir(), ".evmosd")

	removed, err := Reset(home)
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))
	removed, err = Reset(home)
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, IsInitialized(home))
}

func TestStageCommit(t *testing.T) {
	home := filepath.Join(t.TempDir(), ".evmosd")

	stage, err := Stage(home)
	require.NoError(t, err)
	require.NotEqual(t, home, stage.Home)

	// Nothing staged yet
	require.Error(t, Commit(stage, home))

	require.NoError(t, os.MkdirAll(stage.ConfigDir(), 0755))
	require.NoError(t, os.WriteFile(stage.GenesisJSON(), []byte("{}"), 0600))
	require.NoError(t, Commit(stage, home))

	require.True(t, IsInitialized(home))
	require.FileExists(t, Paths{Home: home}.GenesisJSON())
	require.False(t, IsInitialized(stage.Home))

	_, err = Stage(home)
	var fsErr *FilesystemError
	require.True(t, errors.As(err, &fsErr))
}

func TestStageDiscard(t *testing.T) {
	home := filepath.Join(t.TempDir(), ".evmosd")

	stage, err := Stage(home)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(stage.ConfigDir(), 0755))

	require.NoError(t, Discard(stage))
	require.False(t, IsInitialized(stage.Home))
	require.False(t, IsInitialized(home))
}
