package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/evmosup/evmosup/evmosup/console"
)

func exit(err interface{}) {
	if err == nil {
		os.Exit(0)
	}
	console.Error(err)
	os.Exit(1)
}

// withExitSignals returns a context that will stop whenever
// the process receive a SIGINT / SIGTERM
func withExitSignals(parentCtx context.Context) context.Context {
	ctx, stop := context.WithCancel(parentCtx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	console.Info("Press CTRL-C to stop the process")
	go func() {
		select {
		case <-parentCtx.Done():
		case sig := <-sigs:
			console.Warnf("Got Signal, Shutting down... signal: %s", sig.String())
		}
		stop()
	}()
	return ctx
}

// stdinIsTerminal is replaced in tests
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirm asks a yes/no question, defaulting to no
func confirm(in io.Reader, question string) bool {
	fmt.Fprintf(console.Output, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
