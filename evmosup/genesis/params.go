package genesis

import (
	"encoding/json"
	"fmt"
	"time"
)

// GovernancePeriods are the governance durations written into genesis
type GovernancePeriods struct {
	MaxDepositPeriod      time.Duration
	VotingPeriod          time.Duration
	ExpeditedVotingPeriod time.Duration
}

// Balance is one entry of the bank module genesis balances
type Balance struct {
	Address string `json:"address"`
	Coins   []struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"coins"`
}

// SetBlockMaxGas sets the consensus block gas limit. Recent genesis files
// nest consensus parameters under "consensus.params"; older ones use
// "consensus_params".
func (d *Document) SetBlockMaxGas(maxGas uint64) error {
	value := fmt.Sprintf("%d", maxGas)
	if d.Has("consensus", "params") {
		return d.Set(value, "consensus", "params", "block", "max_gas")
	}
	return d.Set(value, "consensus_params", "block", "max_gas")
}

// BlockMaxGas returns the consensus block gas limit
func (d *Document) BlockMaxGas() (string, bool) {
	if v, ok := d.String("consensus", "params", "block", "max_gas"); ok {
		return v, true
	}
	return d.String("consensus_params", "block", "max_gas")
}

// SetBaseFee sets the feemarket base fee
func (d *Document) SetBaseFee(baseFee uint64) error {
	return d.Set(fmt.Sprintf("%d", baseFee), "app_state", "feemarket", "params", "base_fee")
}

// BaseFee returns the feemarket base fee
func (d *Document) BaseFee() (string, bool) {
	return d.String("app_state", "feemarket", "params", "base_fee")
}

// SetGovernancePeriods sets the deposit and voting periods of the gov module
func (d *Document) SetGovernancePeriods(p GovernancePeriods) error {
	params := []struct {
		key   string
		value time.Duration
	}{
		{"max_deposit_period", p.MaxDepositPeriod},
		{"voting_period", p.VotingPeriod},
		{"expedited_voting_period", p.ExpeditedVotingPeriod},
	}
	for _, param := range params {
		if param.value <= 0 {
			continue
		}
		if err := d.Set(formatDuration(param.value), "app_state", "gov", "params", param.key); err != nil {
			return err
		}
	}
	return nil
}

// GovernancePeriod returns a gov module duration parameter
func (d *Document) GovernancePeriod(key string) (string, bool) {
	return d.String("app_state", "gov", "params", key)
}

// Balances returns the bank module genesis balances
func (d *Document) Balances() ([]Balance, error) {
	raw, ok := d.Get("app_state", "bank", "balances")
	if !ok || raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var balances []Balance
	if err := json.Unmarshal(data, &balances); err != nil {
		return nil, fmt.Errorf("invalid bank balances: %w", err)
	}
	return balances, nil
}

// ChainID returns the chain identifier recorded by `init`
func (d *Document) ChainID() (string, bool) {
	return d.String("chain_id")
}

// formatDuration renders d as the Go duration string the node parses,
// without the zero components time.Duration.String adds ("30s", not "0m30s").
func formatDuration(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return d.String()
}
