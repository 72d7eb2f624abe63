package env

import (
	"fmt"
	"os"

	"github.com/evmosup/evmosup/internal/fileutils"
)

// FilesystemError reports a node home path that is missing or cannot be modified
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// IsInitialized reports whether home exists and is a directory.
//
// This is the only check deciding whether the bootstrap pipeline runs: the
// contents of the directory are trusted as is, so a home left behind by a
// failed run is indistinguishable from a complete one.
func IsInitialized(home string) bool {
	ok, err := fileutils.IsDirectory(home)
	return err == nil && ok
}

// Reset removes the node home. It returns false when there was nothing to remove.
func Reset(home string) (bool, error) {
	if !fileutils.FileExists(home) {
		return false, nil
	}
	if err := os.RemoveAll(home); err != nil {
		return false, &FilesystemError{Op: "remove", Path: home, Err: err}
	}
	return true, nil
}

// Stage prepares an empty staging directory next to home. The bootstrap
// pipeline is run against it and the result is swapped in with Commit.
func Stage(home string) (Paths, error) {
	if IsInitialized(home) {
		return Paths{}, &FilesystemError{Op: "stage", Path: home, Err: os.ErrExist}
	}
	stage := stagingHome(home)
	// Leftovers of an interrupted staged run are never trusted
	if err := os.RemoveAll(stage); err != nil {
		return Paths{}, &FilesystemError{Op: "remove", Path: stage, Err: err}
	}
	return Paths{Home: stage}, nil
}

// Commit moves a fully bootstrapped staging home into place.
func Commit(stage Paths, home string) error {
	if !IsInitialized(stage.Home) {
		return &FilesystemError{Op: "commit", Path: stage.Home, Err: os.ErrNotExist}
	}
	if err := os.Rename(stage.Home, home); err != nil {
		return &FilesystemError{Op: "commit", Path: home, Err: err}
	}
	return nil
}

// Discard removes a staging home after a failed bootstrap.
func Discard(stage Paths) error {
	if err := os.RemoveAll(stage.Home); err != nil {
		return &FilesystemError{Op: "remove", Path: stage.Home, Err: err}
	}
	return nil
}
