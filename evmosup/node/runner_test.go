package node

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func testExecRunner() (*ExecRunner, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewExecRunner(hclog.NewNullLogger())
	r.Stdin = bytes.NewReader(nil)
	r.Stdout = &out
	r.Stderr = &out
	return r, &out
}

func shell(script string) Command {
	return Command{Path: "sh", Subcommand: "script", Args: []string{"-c", script}}
}

func TestExecRunnerRun(t *testing.T) {
	r, out := testExecRunner()

	require.NoError(t, r.Run(context.Background(), shell("echo hello")))
	require.Equal(t, "hello\n", out.String())
}

func TestExecRunnerExitCode(t *testing.T) {
	r, _ := testExecRunner()

	err := r.Run(context.Background(), shell("exit 3"))
	var toolErr *ExternalToolError
	require.True(t, errors.As(err, &toolErr))
	require.Equal(t, 3, toolErr.ExitCode)
	require.Equal(t, "sh script", toolErr.Tool)
	require.Equal(t, "sh script exited with code 3", err.Error())
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r, _ := testExecRunner()

	err := r.Run(context.Background(), Command{Path: "/nonexistent/evmosd", Subcommand: "init"})
	var toolErr *ExternalToolError
	require.True(t, errors.As(err, &toolErr))
	require.Equal(t, -1, toolErr.ExitCode)
	require.Equal(t, "evmosd init", toolErr.Tool)
}

func TestExecRunnerPipedStdin(t *testing.T) {
	r, _ := testExecRunner()

	c := shell(`read line; echo "got:$line"`)
	c.Stdin = []byte("copper push brief\n")
	out, err := r.Output(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, "got:copper push brief\n", string(out))
}

func TestExecRunnerOutput(t *testing.T) {
	r, inherited := testExecRunner()

	out, err := r.Output(context.Background(), shell("echo out; echo err >&2"))
	require.NoError(t, err)
	require.Equal(t, "out\n", string(out))
	require.Equal(t, "err\n", inherited.String())

	c := shell("echo out; echo err >&2")
	c.MergeStderr = true
	out, err = r.Output(context.Background(), c)
	require.NoError(t, err)
	require.Contains(t, string(out), "out")
	require.Contains(t, string(out), "err")
}

func TestExecRunnerInterrupt(t *testing.T) {
	r, _ := testExecRunner()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	err := r.Run(ctx, shell("exec sleep 10"))
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestExecRunnerInterruptAfterExit(t *testing.T) {
	var logs bytes.Buffer
	r := NewExecRunner(hclog.New(&hclog.LoggerOptions{Output: &logs, Level: hclog.Trace}))

	cmd := exec.Command("sh", "-c", "exit 0")
	require.NoError(t, cmd.Start())
	require.NoError(t, cmd.Wait())

	r.interrupt(shell("exit 0"), cmd.Process)
	require.Empty(t, logs.String())
}
