package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/evmosup/evmosup/evmosup/accounts"
	"github.com/evmosup/evmosup/evmosup/config"
	"github.com/evmosup/evmosup/evmosup/env"
	"github.com/evmosup/evmosup/evmosup/console"
	"github.com/evmosup/evmosup/internal/fileutils"
)

var (
	accountsCountFlag = cli.IntFlag{
		Name:  "accounts, a",
		Usage: "Number of accounts to generate, the first one is the validator",
		Value: 4,
	}
	forceFlag = cli.BoolFlag{
		Name:  "force",
		Usage: "Do not ask for confirmation",
	}
	jsonFlag = cli.BoolFlag{
		Name:  "json",
		Usage: "output json",
	}
)

var initCommand = cli.Command{
	Name:   "init",
	Usage:  "Generate the configuration document with fresh accounts",
	Action: initConfig,
	Flags:  []cli.Flag{accountsCountFlag},
}

var resetCommand = cli.Command{
	Name:   "reset",
	Usage:  "Delete the node home so the next run bootstraps from scratch",
	Action: reset,
	Flags:  []cli.Flag{forceFlag},
}

var accountsCommand = cli.Command{
	Name:   "accounts",
	Usage:  "List the configured accounts",
	Action: listAccounts,
	Flags:  []cli.Flag{jsonFlag},
}

func initConfig(ctx *cli.Context) error {
	path := ctx.GlobalString(configFlag.Name)
	if fileutils.FileExists(path) {
		console.Warnf("Overwriting %s", path)
	}

	cfg, err := accounts.Create(context.Background(), readBinary(ctx), ctx.Int("accounts"))
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	logger.Debug("Configuration written", "path", path, "accounts", len(cfg.GenesisAccounts))
	console.Successf("Wrote %s with %d accounts (validator: %s)", path, len(cfg.GenesisAccounts), cfg.Validator())
	return nil
}

// resetHome picks the home of the configuration document, or the default
// home when there is none
func resetHome(ctx *cli.Context) (string, error) {
	cfg, err := readConfig(ctx)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultHome(), nil
	}
	if err != nil {
		return "", err
	}
	return cfg.Home, nil
}

func reset(ctx *cli.Context) error {
	home, err := resetHome(ctx)
	if err != nil {
		return err
	}
	if !env.IsInitialized(home) {
		console.Warnf("No node home found at %s, nothing to reset", home)
		return nil
	}

	if !ctx.Bool(forceFlag.Name) {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to delete %s without --force on a non-interactive terminal", home)
		}
		if !confirm(os.Stdin, fmt.Sprintf("Delete %s?", home)) {
			console.Info("Aborted")
			return nil
		}
	}

	console.Warnf("Resetting %s", home)
	if _, err := env.Reset(home); err != nil {
		return err
	}
	console.Successf("Node home removed")
	return nil
}

func listAccounts(ctx *cli.Context) error {
	cl, err := readCluster(ctx)
	if err != nil {
		return err
	}
	infos, err := cl.Accounts(context.Background())
	if err != nil {
		return err
	}

	if ctx.Bool(jsonFlag.Name) {
		jsonData, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(console.Output, string(jsonData))
		return nil
	}

	table := tablewriter.NewWriter(console.Output)
	table.SetHeader([]string{"Name", "Role", "Address"})
	for _, info := range infos {
		address := info.Address
		if address == "" {
			address = "-"
		}
		table.Append([]string{info.Name, string(info.Role), address})
	}
	table.Render()
	return nil
}
