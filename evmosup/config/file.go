package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/evmosup/evmosup/internal/fileutils"
	"github.com/naoina/toml"
)

// These settings ensure that TOML keys use the names declared in the
// struct tags and that unknown keys are rejected instead of ignored.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load reads and validates the configuration document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (run `evmosup init` first)", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := tomlSettings.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path, replacing any existing document.
func (cfg *Config) Save(path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	// The document holds mnemonics
	return fileutils.WriteFileAtomic(path, data, 0600)
}
