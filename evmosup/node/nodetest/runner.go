// Package nodetest provides a scriptable node.Runner for tests
package nodetest

import (
	"context"
	"sync"

	"github.com/evmosup/evmosup/evmosup/node"
)

// Handler simulates one subcommand. The returned bytes are the captured
// stdout for Output calls and are ignored for Run calls.
type Handler func(cmd node.Command) ([]byte, error)

// Runner records every command and dispatches it to the handler registered
// for its subcommand. Unhandled subcommands succeed with no output.
type Runner struct {
	mu       sync.Mutex
	handlers map[string]Handler
	commands []node.Command
}

// NewRunner creates an empty recording runner
func NewRunner() *Runner {
	return &Runner{handlers: make(map[string]Handler)}
}

// Handle registers fn for subcommand (e.g. "keys add")
func (r *Runner) Handle(subcommand string, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[subcommand] = fn
}

// Fail makes subcommand exit with code
func (r *Runner) Fail(subcommand string, code int) {
	r.Handle(subcommand, func(cmd node.Command) ([]byte, error) {
		return nil, &node.ExternalToolError{Tool: cmd.Tool(), ExitCode: code}
	})
}

// Commands returns the commands seen so far
func (r *Runner) Commands() []node.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]node.Command(nil), r.commands...)
}

// Subcommands returns the subcommand of every command seen so far
func (r *Runner) Subcommands() []string {
	var subs []string
	for _, cmd := range r.Commands() {
		subs = append(subs, cmd.Subcommand)
	}
	return subs
}

// Run implements node.Runner
func (r *Runner) Run(ctx context.Context, cmd node.Command) error {
	_, err := r.dispatch(cmd)
	return err
}

// Output implements node.Runner
func (r *Runner) Output(ctx context.Context, cmd node.Command) ([]byte, error) {
	return r.dispatch(cmd)
}

func (r *Runner) dispatch(cmd node.Command) ([]byte, error) {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	handler := r.handlers[cmd.Subcommand]
	r.mu.Unlock()

	if handler == nil {
		return nil, nil
	}
	return handler(cmd)
}
