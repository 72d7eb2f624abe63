package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound is returned when no configuration document exists at the given path
	ErrConfigNotFound = errors.New("config not found")
	// ErrConfigMalformed is returned when the configuration document cannot be parsed or is invalid
	ErrConfigMalformed = errors.New("config malformed")
)

// MalformedError describes why a configuration document was rejected.
// errors.Is(err, ErrConfigMalformed) holds for every MalformedError.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrConfigMalformed, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", ErrConfigMalformed, e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

func (e *MalformedError) Is(target error) bool { return target == ErrConfigMalformed }
