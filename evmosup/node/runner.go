package node

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Command is a single invocation of an external tool
type Command struct {
	Path       string   // executable, resolved through $PATH when not absolute
	Subcommand string   // e.g. "keys add", used to name the tool in errors
	Args       []string // full argument list, Subcommand words included
	// Stdin is piped to the process when set. Otherwise the process
	// inherits the terminal and may prompt the operator.
	Stdin []byte
	// MergeStderr makes Output capture stderr along with stdout
	MergeStderr bool
}

// Tool names the invoked tool the way it is reported to the operator
func (c Command) Tool() string {
	name := filepath.Base(c.Path)
	if c.Subcommand == "" {
		return name
	}
	return name + " " + c.Subcommand
}

// String renders the command line. Stdin is never part of it.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// ExternalToolError is returned when a spawned process does not exit with status 0
type ExternalToolError struct {
	Tool     string
	ExitCode int // -1 when the process could not be started or was killed by a signal
	Err      error
}

func (e *ExternalToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Runner spawns external processes and waits for them to exit.
// There is no timeout: a call returns when the process does.
type Runner interface {
	// Run executes cmd with the standard streams of the current process
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns what it wrote on stdout
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner is the Runner backed by os/exec
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger hclog.Logger
}

// NewExecRunner creates a runner attached to the current process' standard streams
func NewExecRunner(logger hclog.Logger) *ExecRunner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := r.prepare(c)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return r.wait(ctx, c, cmd)
}

// Output implements Runner
func (r *ExecRunner) Output(ctx context.Context, c Command) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := r.prepare(c)
	cmd.Stdout = &stdout
	if c.MergeStderr {
		cmd.Stderr = &stdout
	} else {
		cmd.Stderr = r.Stderr
	}
	if err := r.wait(ctx, c, cmd); err != nil {
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

func (r *ExecRunner) prepare(c Command) *exec.Cmd {
	cmd := exec.Command(c.Path, c.Args...) // #nosec G204
	if c.Stdin != nil {
		cmd.Stdin = bytes.NewReader(c.Stdin)
	} else {
		cmd.Stdin = r.Stdin
	}
	return cmd
}

func (r *ExecRunner) wait(ctx context.Context, c Command, cmd *exec.Cmd) error {
	r.Logger.Debug("Running external tool", "cmd", c.String(), "piped_stdin", c.Stdin != nil)

	if err := cmd.Start(); err != nil {
		return &ExternalToolError{Tool: c.Tool(), ExitCode: -1, Err: err}
	}

	// Forward cancellation (an OS signal received by evmosup) to the child
	exited := make(chan struct{})
	defer close(exited)
	go func() {
		select {
		case <-ctx.Done():
			r.interrupt(c, cmd.Process)
		case <-exited:
		}
	}()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExternalToolError{Tool: c.Tool(), ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &ExternalToolError{Tool: c.Tool(), ExitCode: -1, Err: err}
	}
	return nil
}

// interrupt asks the child to stop. A child that exited in the meantime is
// not an error.
func (r *ExecRunner) interrupt(c Command, p *os.Process) {
	if err := p.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		r.Logger.Warn("Failed to send interrupt signal", "tool", c.Tool(), "err", err)
	}
}
