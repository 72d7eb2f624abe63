package genesis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleGenesis = `{
  "chain_id": "evmos_9001-2",
  "consensus": {
    "params": {
      "block": {"max_bytes": "22020096", "max_gas": "-1"},
      "evidence": {"max_age_num_blocks": "100000"}
    }
  },
  "app_state": {
    "bank": {
      "balances": [
        {"address": "evmos1abc", "coins": [{"denom": "aevmos", "amount": "100000000000000000000000000"}]}
      ]
    },
    "feemarket": {"params": {"base_fee": "1000000000", "no_base_fee": false}},
    "gov": {"params": {"max_deposit_period": "172800s", "voting_period": "172800s", "min_deposit": []}}
  }
}`

func loadSample(t *testing.T) *Document {
	doc, err := Parse([]byte(sampleGenesis))
	require.NoError(t, err)
	return doc
}

func TestSetBlockMaxGas(t *testing.T) {
	doc := loadSample(t)
	require.NoError(t, doc.SetBlockMaxGas(10000000))

	v, ok := doc.String("consensus", "params", "block", "max_gas")
	require.True(t, ok)
	require.Equal(t, "10000000", v)

	v, _ = doc.String("consensus", "params", "block", "max_bytes")
	require.Equal(t, "22020096", v)
	require.False(t, doc.Has("consensus_params"))
}

func TestSetBlockMaxGasLegacyLayout(t *testing.T) {
	doc, err := Parse([]byte(`{"consensus_params": {"block": {"max_gas": "-1"}}}`))
	require.NoError(t, err)
	require.NoError(t, doc.SetBlockMaxGas(10000000))

	v, ok := doc.BlockMaxGas()
	require.True(t, ok)
	require.Equal(t, "10000000", v)
	require.False(t, doc.Has("consensus"))
}

func TestSetBaseFee(t *testing.T) {
	doc := loadSample(t)
	require.NoError(t, doc.SetBaseFee(1000000))

	v, ok := doc.BaseFee()
	require.True(t, ok)
	require.Equal(t, "1000000", v)

	noBaseFee, ok := doc.Get("app_state", "feemarket", "params", "no_base_fee")
	require.True(t, ok)
	require.Equal(t, false, noBaseFee)
}

func TestSetGovernancePeriods(t *testing.T) {
	doc := loadSample(t)
	require.NoError(t, doc.SetGovernancePeriods(GovernancePeriods{
		MaxDepositPeriod:      30 * time.Second,
		VotingPeriod:          30 * time.Second,
		ExpeditedVotingPeriod: 15 * time.Second,
	}))

	for key, want := range map[string]string{
		"max_deposit_period":      "30s",
		"voting_period":           "30s",
		"expedited_voting_period": "15s",
	} {
		got, ok := doc.GovernancePeriod(key)
		require.True(t, ok, key)
		require.Equal(t, want, got, key)
	}
	require.True(t, doc.Has("app_state", "gov", "params", "min_deposit"))
}

func TestSetThroughScalar(t *testing.T) {
	doc := loadSample(t)
	err := doc.Set("x", "chain_id", "nested")
	require.ErrorIs(t, err, ErrNotAnObject)
}

func TestBalances(t *testing.T) {
	doc := loadSample(t)
	balances, err := doc.Balances()
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, "evmos1abc", balances[0].Address)
	require.Equal(t, "aevmos", balances[0].Coins[0].Denom)
	require.Equal(t, "100000000000000000000000000", balances[0].Coins[0].Amount)

	empty, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	balances, err = empty.Balances()
	require.NoError(t, err)
	require.Empty(t, balances)
}

func TestSaveKeepsLargeNumbers(t *testing.T) {
	doc, err := Parse([]byte(`{"initial_height": 1, "supply": 100000000000000000000000000}`))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, doc.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "100000000000000000000000000")

	reloaded, err := Load(path)
	require.NoError(t, err)
	v, ok := reloaded.String("initial_height")
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("not json"))
	require.Error(t, err)
	_, err = Parse([]byte("null"))
	require.ErrorIs(t, err, ErrNotAnObject)
}

func TestParseRejectsTrailingData(t *testing.T) {
	for _, data := range []string{
		`{"chain_id":"x"} {"truncated":`,
		`{"chain_id":"x"} garbage`,
		`{"chain_id":"x"}}`,
	} {
		_, err := Parse([]byte(data))
		require.Error(t, err, data)
	}

	doc, err := Parse([]byte("{\"chain_id\":\"x\"}\n\n"))
	require.NoError(t, err)
	chainID, _ := doc.ChainID()
	require.Equal(t, "x", chainID)
}
