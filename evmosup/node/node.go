package node

import (
	"context"
	"fmt"
	"strings"

	"github.com/evmosup/evmosup/evmosup/config"
	"github.com/hashicorp/go-hclog"
)

// DefaultBinary is the node executable looked up in $PATH
const DefaultBinary = "evmosd"

// Binary drives the node executable. Every method maps to one subcommand
// and blocks until the process exits.
type Binary struct {
	Path   string
	Runner Runner
	Logger hclog.Logger
}

// NewBinary creates a node binary runner
func NewBinary(path string, runner Runner, logger hclog.Logger) *Binary {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Binary{
		Path:   path,
		Runner: runner,
		Logger: logger,
	}
}

// Keyring selects where keys are stored and how they are derived
type Keyring struct {
	Backend string
	Algo    string
}

// GentxOptions are the parameters of the validator's genesis transaction
type GentxOptions struct {
	Key            string
	Amount         config.Coin
	GasPrices      config.Coin
	KeyringBackend string
	ChainID        string
}

// StartOptions are the parameters the node is launched with
type StartOptions struct {
	ChainID          string
	MinimumGasPrices config.Coin
	JSONRPCAPI       []string
}

func (b *Binary) command(subcommand string, args ...string) Command {
	return Command{
		Path:       b.Path,
		Subcommand: subcommand,
		Args:       append(strings.Fields(subcommand), args...),
	}
}

// ConfigSet runs `config set <scope> <key> <value>`
func (b *Binary) ConfigSet(ctx context.Context, home, scope, key, value string) error {
	return b.Runner.Run(ctx, b.command("config set", scope, key, value, "--home", home))
}

// KeysAdd recovers key name from mnemonic. When prompt is false the mnemonic
// is piped on stdin; otherwise the operator answers the binary's prompts
// (mnemonic and keyring passphrase) on the terminal.
func (b *Binary) KeysAdd(ctx context.Context, home string, keyring Keyring, name, mnemonic string, prompt bool) error {
	cmd := b.command("keys add", name,
		"--recover",
		"--keyring-backend", keyring.Backend,
		"--algo", keyring.Algo,
		"--home", home,
	)
	if !prompt {
		cmd.Stdin = []byte(mnemonic + "\n")
	}
	return b.Runner.Run(ctx, cmd)
}

// KeysShowAddress returns the bech32 address of key name
func (b *Binary) KeysShowAddress(ctx context.Context, home, keyringBackend, name string) (string, error) {
	out, err := b.Runner.Output(ctx, b.command("keys show", name, "-a",
		"--keyring-backend", keyringBackend,
		"--home", home,
	))
	if err != nil {
		return "", err
	}
	address := strings.TrimSpace(string(out))
	if address == "" || strings.ContainsAny(address, " \n") {
		return "", fmt.Errorf("unexpected `keys show` output for %s: %q", name, address)
	}
	return address, nil
}

// NewMnemonic asks the binary for a fresh mnemonic (`keys mnemonic`).
// The phrase is printed on stderr by some releases, so both streams are read
// and the last non empty line is kept.
func (b *Binary) NewMnemonic(ctx context.Context) (string, error) {
	cmd := b.command("keys mnemonic")
	cmd.MergeStderr = true
	out, err := b.Runner.Output(ctx, cmd)
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1]), nil
}

// Init runs `init`, replacing any genesis already present in home
func (b *Binary) Init(ctx context.Context, home, moniker, chainID string) error {
	return b.Runner.Run(ctx, b.command("init", moniker,
		"--chain-id", chainID,
		"--home", home,
		"--overwrite",
	))
}

// AddGenesisAccount credits address with amount in the genesis document
func (b *Binary) AddGenesisAccount(ctx context.Context, home, keyringBackend, address string, amount config.Coin) error {
	return b.Runner.Run(ctx, b.command("add-genesis-account", address, amount.String(),
		"--keyring-backend", keyringBackend,
		"--home", home,
	))
}

// Gentx signs the genesis staking transaction
func (b *Binary) Gentx(ctx context.Context, home string, opts GentxOptions) error {
	return b.Runner.Run(ctx, b.command("gentx", opts.Key, opts.Amount.String(),
		"--gas-prices", opts.GasPrices.String(),
		"--keyring-backend", opts.KeyringBackend,
		"--chain-id", opts.ChainID,
		"--home", home,
	))
}

// CollectGentxs merges the signed genesis transactions into genesis
func (b *Binary) CollectGentxs(ctx context.Context, home string) error {
	return b.Runner.Run(ctx, b.command("collect-gentxs", "--home", home))
}

// ValidateGenesis runs the binary's own genesis checks
func (b *Binary) ValidateGenesis(ctx context.Context, home string) error {
	return b.Runner.Run(ctx, b.command("validate-genesis", "--home", home))
}

// Start launches the node. It returns when the node process exits.
func (b *Binary) Start(ctx context.Context, home string, opts StartOptions) error {
	args := []string{
		"--home", home,
		"--chain-id", opts.ChainID,
		"--minimum-gas-prices=" + opts.MinimumGasPrices.String(),
	}
	if len(opts.JSONRPCAPI) > 0 {
		args = append(args, "--json-rpc.api", strings.Join(opts.JSONRPCAPI, ","))
	}
	b.Logger.Info("Starting node", "home", home, "chain_id", opts.ChainID)
	return b.Runner.Run(ctx, b.command("start", args...))
}
