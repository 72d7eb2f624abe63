package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

const loggerDomainName = "evmosup"

// newFileLogger returns a logger that appends every record to path
func newFileLogger(path string, level hclog.Level) (hclog.Logger, error) {
	logFileWriter, err := os.OpenFile(path, os.O_CREATE+os.O_RDWR+os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("could not create log file, %w", err)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   loggerDomainName,
		Level:  level,
		Output: logFileWriter,
	}), nil
}

// newCLILogger returns a logger writing to stderr
func newCLILogger(level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  loggerDomainName,
		Level: level,
	})
}

// newLogger builds the logger selected by --verbosity and --log-to
func newLogger(verbosity, logTo string) (hclog.Logger, error) {
	level := hclog.LevelFromString(verbosity)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid verbosity %q (trace, debug, info, warn, error)", verbosity)
	}
	if logTo != "" {
		return newFileLogger(logTo, level)
	}
	return newCLILogger(level), nil
}
