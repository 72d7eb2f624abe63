package config

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Coin is an amount of a denomination, rendered the way the node binary
// expects amounts on its command line (e.g. 1000aevmos).
type Coin struct {
	Amount decimal.Decimal
	Denom  string
}

// String implements fmt.Stringer
func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coin returns amount expressed in the base denomination
func (cfg *Config) Coin(amount decimal.Decimal) Coin {
	return Coin{Amount: amount, Denom: cfg.BaseDenom}
}

// BaseFeeCoin is the base fee in the base denomination, used as gentx gas price
func (cfg *Config) BaseFeeCoin() Coin {
	return cfg.Coin(fromUint64(cfg.BaseFee))
}

// MinimumGasPricesCoin is the minimum gas price the node accepts once started
func (cfg *Config) MinimumGasPricesCoin() Coin {
	return cfg.Coin(fromUint64(cfg.MinimumGasPrices))
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}
