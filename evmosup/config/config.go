package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// DefaultFileName is the configuration document looked up in the working directory
const DefaultFileName = "evmosup.toml"

// Config represents evmosup configuration parameters.
// It is written once by `evmosup init` and only read afterwards.
type Config struct {
	ChainID          string    `toml:"chain_id"`           // chain identifier, fixed for the lifetime of the network
	KeyringBackend   string    `toml:"keyring_backend"`    // keyring backend (test, file, os, ...)
	Home             string    `toml:"home"`               // absolute path of the node home directory
	KeyAlgo          string    `toml:"key_algo"`           // signature algorithm passed to `keys add`
	BaseDenom        string    `toml:"base_denom"`         // denomination of every genesis amount
	Moniker          string    `toml:"moniker"`            // node name passed to `init`
	BaseFee          uint64    `toml:"basefee"`            // feemarket base fee written in genesis
	MinimumGasPrices uint64    `toml:"minimum_gas_prices"` // --minimum-gas-prices used at launch
	GenesisAccounts  []Account `toml:"genesis_accounts"`   // funded accounts, the first one is the validator
}

// Account is a named keyring entry recovered from its mnemonic
type Account struct {
	Name     string `toml:"name"`
	Mnemonic string `toml:"mnemonic"`
}

// String never includes the mnemonic
func (a Account) String() string { return a.Name }

// Default returns the configuration of a local test network with the
// five well known development accounts.
func Default() *Config {
	return &Config{
		ChainID:          "evmos_9001-2",
		KeyringBackend:   "test",
		Home:             DefaultHome(),
		KeyAlgo:          "eth_secp256k1",
		BaseDenom:        "aevmos",
		Moniker:          "localtestnet",
		BaseFee:          1000000,
		MinimumGasPrices: 1000000,
		GenesisAccounts: []Account{
			{Name: "val_key", Mnemonic: "gesture inject test cycle original hollow east ridge hen combine junk child bacon zero hope comfort vacuum milk pitch cage oppose unhappy lunar seat"},
			{Name: "user1_key", Mnemonic: "copper push brief egg scan entry inform record adjust fossil boss egg comic alien upon aspect dry avoid interest fury window hint race symptom"},
			{Name: "user2_key", Mnemonic: "maximum display century economy unlock van census kite error heart snow filter midnight usage egg venture cash kick motor survey drastic edge muffin visual"},
			{Name: "user3_key", Mnemonic: "will wear settle write dance topic tape sea glory hotel oppose rebel client problem era video gossip glide during yard balance cancel file rose"},
			{Name: "user4_key", Mnemonic: "doll midnight silk carpet brush boring pluck office gown inquiry duck chief aim exit gain never tennis crime fragile ship cloud surface exotic patch"},
		},
	}
}

// DefaultHome is ~/.evmosd, resolved once when a configuration is created.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home, _ = filepath.Abs(".")
	}
	return filepath.Join(home, ".evmosd")
}

// Validator returns the account staking the genesis transaction.
// Only meaningful on a validated configuration.
func (cfg *Config) Validator() Account { return cfg.GenesisAccounts[0] }

// RequiresPassphrase reports whether importing a key in the configured
// keyring backend prompts for a secret besides the mnemonic.
func (cfg *Config) RequiresPassphrase() bool {
	switch cfg.KeyringBackend {
	case "test", "memory":
		return false
	}
	return true
}

// Validate checks the invariants every persisted configuration must hold.
// All problems are reported at once.
func (cfg *Config) Validate() error {
	var result *multierror.Error

	required := []struct {
		key   string
		value string
	}{
		{"chain_id", cfg.ChainID},
		{"keyring_backend", cfg.KeyringBackend},
		{"home", cfg.Home},
		{"key_algo", cfg.KeyAlgo},
		{"base_denom", cfg.BaseDenom},
		{"moniker", cfg.Moniker},
	}
	for _, field := range required {
		if field.value == "" {
			result = multierror.Append(result, fmt.Errorf("missing required field '%s'", field.key))
		}
	}

	if cfg.Home != "" && !filepath.IsAbs(cfg.Home) {
		result = multierror.Append(result, fmt.Errorf("home must be an absolute path, got %q", cfg.Home))
	}

	if len(cfg.GenesisAccounts) == 0 {
		result = multierror.Append(result, fmt.Errorf("genesis_accounts must contain at least one account"))
	}

	seen := make(map[string]int, len(cfg.GenesisAccounts))
	for i, acc := range cfg.GenesisAccounts {
		if acc.Name == "" {
			result = multierror.Append(result, fmt.Errorf("genesis_accounts[%d]: missing required field 'name'", i))
		} else if j, dup := seen[acc.Name]; dup {
			result = multierror.Append(result, fmt.Errorf("genesis_accounts[%d]: name '%s' already used by genesis_accounts[%d]", i, acc.Name, j))
		} else {
			seen[acc.Name] = i
		}
		if acc.Mnemonic == "" {
			result = multierror.Append(result, fmt.Errorf("genesis_accounts[%d]: missing required field 'mnemonic'", i))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return &MalformedError{Err: err}
	}
	return nil
}
