package env

import (
	"path/filepath"
)

// Paths locates the files the bootstrap pipeline touches inside a node home
type Paths struct {
	Home string
}

func (p Paths) ConfigDir() string  { return filepath.Join(p.Home, "config") }
func (p Paths) GenesisJSON() string { return filepath.Join(p.ConfigDir(), "genesis.json") }
func (p Paths) AppTOML() string     { return filepath.Join(p.ConfigDir(), "app.toml") }
func (p Paths) ClientTOML() string  { return filepath.Join(p.ConfigDir(), "client.toml") }
func (p Paths) GentxDir() string    { return filepath.Join(p.ConfigDir(), "gentx") }

// stagingHome is where a staged bootstrap builds the home before it is swapped in
func stagingHome(home string) string {
	return filepath.Clean(home) + ".staging"
}
