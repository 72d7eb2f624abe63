package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/evmosup/evmosup/evmosup/cluster"
	"github.com/evmosup/evmosup/evmosup/config"
	"github.com/evmosup/evmosup/evmosup/node"
	"github.com/evmosup/evmosup/evmosup/templates"
)

var (
	// Set by the linker
	gitCommit string

	app = &cli.App{
		Name:        filepath.Base(os.Args[0]),
		Usage:       "bootstrap and run a single-validator local Evmos network",
		Version:     "0.1.0",
		Writer:      os.Stdout,
		HideVersion: true,
	}

	logger hclog.Logger = hclog.NewNullLogger()

	// newRunner spawns node binary processes; tests replace it
	newRunner = func(logger hclog.Logger) node.Runner { return node.NewExecRunner(logger) }
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Path of the configuration document",
		Value: config.DefaultFileName,
	}
	binaryFlag = cli.StringFlag{
		Name:   "binary",
		Usage:  "Node binary to drive",
		Value:  node.DefaultBinary,
		EnvVar: "EVMOSUP_BINARY",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level (trace, debug, info, warn, error)",
		Value: "info",
	}
	logToFlag = cli.StringFlag{
		Name:  "log-to",
		Usage: "Write logs to this file instead of stderr",
	}
	profileFlag = cli.StringFlag{
		Name:  "profile",
		Usage: fmt.Sprintf("Bootstrap template %v", templates.Names()),
		Value: templates.DefaultName,
	}
	stagedFlag = cli.BoolFlag{
		Name:  "staged",
		Usage: "Bootstrap into a staging directory and move it into place only on success",
	}
)

func init() {
	if gitCommit != "" {
		app.Version += "-" + gitCommit
	}
	app.Flags = []cli.Flag{
		configFlag,
		binaryFlag,
		verbosityFlag,
		logToFlag,
		profileFlag,
		stagedFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		l, err := newLogger(ctx.GlobalString(verbosityFlag.Name), ctx.GlobalString(logToFlag.Name))
		if err != nil {
			return err
		}
		logger = l
		return nil
	}
	app.CommandNotFound = func(ctx *cli.Context, cmd string) {
		fmt.Fprintf(os.Stderr, "No such command: %s\n", cmd)
		os.Exit(1)
	}
	app.Action = up
	app.Commands = []cli.Command{
		initCommand,
		resetCommand,
		accountsCommand,
	}
}

func main() {
	exit(app.Run(os.Args))
}

func readBinary(ctx *cli.Context) *node.Binary {
	path := ctx.GlobalString(binaryFlag.Name)
	named := logger.Named("node")
	return node.NewBinary(path, newRunner(named), named)
}

func readConfig(ctx *cli.Context) (*config.Config, error) {
	return config.Load(ctx.GlobalString(configFlag.Name))
}

func readCluster(ctx *cli.Context) (*cluster.Cluster, error) {
	cfg, err := readConfig(ctx)
	if err != nil {
		return nil, err
	}
	tpl, err := templates.FromString(ctx.GlobalString(profileFlag.Name))
	if err != nil {
		return nil, err
	}
	cl := cluster.New(cfg, readBinary(ctx), tpl, logger.Named("cluster"))
	cl.Staged = ctx.GlobalBool(stagedFlag.Name)
	return cl, nil
}

// up bootstraps the home when needed and runs the node in the foreground
func up(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", ctx.Args().First())
	}
	cl, err := readCluster(ctx)
	if err != nil {
		return err
	}

	return runUp(withExitSignals(context.Background()), cl)
}

// runUp runs the cluster until it stops or ctx is cancelled. A node stopped
// by the interrupt forwarded on cancellation is a clean shutdown.
func runUp(ctx context.Context, cl *cluster.Cluster) error {
	group, runCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return cl.Up(runCtx) })

	err := group.Wait()
	if errors.Is(ctx.Err(), context.Canceled) {
		var toolErr *node.ExternalToolError
		if errors.As(err, &toolErr) && toolErr.ExitCode < 0 {
			return nil
		}
	}
	return err
}
