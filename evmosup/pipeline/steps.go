package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"

	"github.com/evmosup/evmosup/evmosup/appconfig"
	"github.com/evmosup/evmosup/evmosup/env"
	"github.com/evmosup/evmosup/evmosup/genesis"
	"github.com/evmosup/evmosup/evmosup/node"
)

// ErrNotInteractive is returned when a keyring passphrase must be typed but
// stdin is not a terminal
var ErrNotInteractive = errors.New("keyring backend needs a passphrase but stdin is not a terminal")

// stdinIsTerminal is replaced in tests
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConfigureClient writes the chain id and keyring backend to client.toml
func ConfigureClient() Step {
	return StepFunc{"configure client", func(ctx context.Context, c *Context) error {
		home := c.Paths.Home
		if err := c.Node.ConfigSet(ctx, home, "client", "chain-id", c.Config.ChainID); err != nil {
			return err
		}
		return c.Node.ConfigSet(ctx, home, "client", "keyring-backend", c.Config.KeyringBackend)
	}}
}

// ImportAccounts recovers every configured account into the keyring
func ImportAccounts() Step {
	return StepFunc{"import accounts", func(ctx context.Context, c *Context) error {
		prompt := c.Config.RequiresPassphrase()
		if prompt && !stdinIsTerminal() {
			return fmt.Errorf("%w (backend %q)", ErrNotInteractive, c.Config.KeyringBackend)
		}
		keyring := node.Keyring{Backend: c.Config.KeyringBackend, Algo: c.Config.KeyAlgo}
		for _, acc := range c.Config.GenesisAccounts {
			c.logger().Debug("Importing key", "name", acc.Name)
			if err := c.Node.KeysAdd(ctx, c.Paths.Home, keyring, acc.Name, acc.Mnemonic, prompt); err != nil {
				return fmt.Errorf("import %s: %w", acc.Name, err)
			}
		}
		return nil
	}}
}

// InitHome lays out the node home
func InitHome() Step {
	return StepFunc{"init home", func(ctx context.Context, c *Context) error {
		return c.Node.Init(ctx, c.Paths.Home, c.Config.Moniker, c.Config.ChainID)
	}}
}

// PatchChainParams sets the block gas limit and the feemarket base fee
func PatchChainParams(maxGas uint64) Step {
	return StepFunc{"patch chain params", func(ctx context.Context, c *Context) error {
		return editGenesis(c, func(doc *genesis.Document) error {
			if err := doc.SetBlockMaxGas(maxGas); err != nil {
				return err
			}
			return doc.SetBaseFee(c.Config.BaseFee)
		})
	}}
}

// ToggleServices enables every service of app.toml, then disables the named
// sections that exist
func ToggleServices(disabled ...string) Step {
	return StepFunc{"toggle services", func(ctx context.Context, c *Context) error {
		return editAppConfig(c, func(f *appconfig.File) error {
			enabled, err := f.EnableServices()
			if err != nil {
				return err
			}
			off, err := f.DisableSections(disabled...)
			if err != nil {
				return err
			}
			c.logger().Debug("Toggled services", "enabled", enabled, "disabled", off)
			return nil
		})
	}}
}

// ShortenGovernance shortens the deposit and voting periods
func ShortenGovernance(periods genesis.GovernancePeriods) Step {
	return StepFunc{"shorten governance", func(ctx context.Context, c *Context) error {
		return editGenesis(c, func(doc *genesis.Document) error {
			return doc.SetGovernancePeriods(periods)
		})
	}}
}

// AdjustPruning applies policy to app.toml
func AdjustPruning(policy appconfig.PruningPolicy) Step {
	return StepFunc{"adjust pruning", func(ctx context.Context, c *Context) error {
		return editAppConfig(c, func(f *appconfig.File) error {
			return f.SetPruning(policy)
		})
	}}
}

// AllocateBalances funds every configured account in genesis
func AllocateBalances(amount decimal.Decimal) Step {
	return StepFunc{"allocate balances", func(ctx context.Context, c *Context) error {
		coin := c.Config.Coin(amount)
		for _, acc := range c.Config.GenesisAccounts {
			address, err := c.Node.KeysShowAddress(ctx, c.Paths.Home, c.Config.KeyringBackend, acc.Name)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", acc.Name, err)
			}
			c.logger().Debug("Funding account", "name", acc.Name, "address", address, "amount", coin)
			if err := c.Node.AddGenesisAccount(ctx, c.Paths.Home, c.Config.KeyringBackend, address, coin); err != nil {
				return fmt.Errorf("fund %s: %w", acc.Name, err)
			}
		}
		return nil
	}}
}

// SignGentx has the validator sign its self-delegation
func SignGentx(stake decimal.Decimal) Step {
	return StepFunc{"sign gentx", func(ctx context.Context, c *Context) error {
		return c.Node.Gentx(ctx, c.Paths.Home, node.GentxOptions{
			Key:            c.Config.Validator().Name,
			Amount:         c.Config.Coin(stake),
			GasPrices:      c.Config.BaseFeeCoin(),
			KeyringBackend: c.Config.KeyringBackend,
			ChainID:        c.Config.ChainID,
		})
	}}
}

// CollectGentxs folds the signed gentx into genesis
func CollectGentxs() Step {
	return StepFunc{"collect gentxs", func(ctx context.Context, c *Context) error {
		return c.Node.CollectGentxs(ctx, c.Paths.Home)
	}}
}

// ValidateGenesis runs the binary's own genesis check
func ValidateGenesis() Step {
	return StepFunc{"validate genesis", func(ctx context.Context, c *Context) error {
		return c.Node.ValidateGenesis(ctx, c.Paths.Home)
	}}
}

func editGenesis(c *Context, fn func(doc *genesis.Document) error) error {
	path := c.Paths.GenesisJSON()
	doc, err := genesis.Load(path)
	if err != nil {
		return fsError("read", path, err)
	}
	if err := fn(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fsError("write", path, doc.Save(path))
}

func editAppConfig(c *Context, fn func(f *appconfig.File) error) error {
	path := c.Paths.AppTOML()
	f, err := appconfig.Load(path)
	if err != nil {
		return fsError("read", path, err)
	}
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fsError("write", path, f.Save(path))
}

func fsError(op, path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return &env.FilesystemError{Op: op, Path: path, Err: err}
	}
	return err
}
