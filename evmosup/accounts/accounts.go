package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/evmosup/evmosup/evmosup/config"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicSource produces fresh recovery phrases. node.Binary implements it
// by calling `keys mnemonic`.
type MnemonicSource interface {
	NewMnemonic(ctx context.Context) (string, error)
}

// ErrInvalidMnemonic is returned when a generated phrase is not a BIP-39 mnemonic
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// ProvisioningError is returned when an account could not be generated
type ProvisioningError struct {
	Index int
	Name  string
	Err   error
}

func (e *ProvisioningError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("account provisioning failed: %v", e.Err)
	}
	return fmt.Sprintf("account provisioning failed for %s: %v", e.Name, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// AccountName returns the keyring alias of the idx-th (0 based) generated account
func AccountName(idx int) string {
	return fmt.Sprintf("user%d_key", idx+1)
}

// Generate creates n accounts with mnemonics obtained from source.
// The first account is the validator.
func Generate(ctx context.Context, source MnemonicSource, n int) ([]config.Account, error) {
	if n < 1 {
		return nil, &ProvisioningError{Err: fmt.Errorf("at least one account is required, got %d", n)}
	}

	accounts := make([]config.Account, n)
	for i := range accounts {
		name := AccountName(i)
		mnemonic, err := source.NewMnemonic(ctx)
		if err != nil {
			return nil, &ProvisioningError{Index: i, Name: name, Err: err}
		}
		if !bip39.IsMnemonicValid(mnemonic) {
			return nil, &ProvisioningError{Index: i, Name: name, Err: ErrInvalidMnemonic}
		}
		accounts[i] = config.Account{Name: name, Mnemonic: mnemonic}
	}
	return accounts, nil
}

// Create returns the default configuration with n freshly generated accounts
func Create(ctx context.Context, source MnemonicSource, n int) (*config.Config, error) {
	generated, err := Generate(ctx, source, n)
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	cfg.GenesisAccounts = generated
	return cfg, nil
}
