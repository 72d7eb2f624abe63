// Package pipeline holds the ordered bootstrap steps that turn an empty
// home directory into a node ready to start.
package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/evmosup/evmosup/evmosup/config"
	"github.com/evmosup/evmosup/evmosup/env"
	"github.com/evmosup/evmosup/evmosup/node"
)

// Context is what every step operates on
type Context struct {
	Config *config.Config
	Paths  env.Paths // home being mutated, possibly a staging copy of Config.Home
	Node   *node.Binary
	Logger hclog.Logger
}

func (c *Context) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

// Step is one bootstrap action
type Step interface {
	Name() string
	Apply(ctx context.Context, c *Context) error
}

// StepFunc adapts a function into a Step
type StepFunc struct {
	StepName string
	Fn       func(ctx context.Context, c *Context) error
}

func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Apply(ctx context.Context, c *Context) error { return s.Fn(ctx, c) }

// StepError reports the step that aborted a pipeline
type StepError struct {
	Step  string
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Pipeline runs steps strictly in order
type Pipeline struct {
	Steps []Step
}

// New creates a pipeline from steps
func New(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

// Run applies every step. The first failure aborts the run; nothing done by
// earlier steps is rolled back.
func (p *Pipeline) Run(ctx context.Context, c *Context) error {
	logger := c.logger()
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.Name(), Index: i, Err: err}
		}
		logger.Info("Running step", "step", step.Name(), "index", i+1, "total", len(p.Steps))
		if err := step.Apply(ctx, c); err != nil {
			logger.Error("Step failed", "step", step.Name(), "err", err)
			return &StepError{Step: step.Name(), Index: i, Err: err}
		}
	}
	return nil
}

// Names returns the name of every step
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		names[i] = step.Name()
	}
	return names
}
