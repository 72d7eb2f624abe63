package templates

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	tpl, err := FromString("")
	require.NoError(t, err)
	require.Equal(t, DefaultName, tpl.Name)

	tpl, err = FromString("minimal")
	require.NoError(t, err)
	require.Equal(t, "minimal", tpl.Name)
	require.Nil(t, tpl.Pruning)

	_, err = FromString("loadtest")
	require.Error(t, err)
}

func TestExtendedSteps(t *testing.T) {
	tpl, err := FromString("extended")
	require.NoError(t, err)

	require.Equal(t, []string{
		"configure client",
		"import accounts",
		"init home",
		"patch chain params",
		"toggle services",
		"shorten governance",
		"adjust pruning",
		"allocate balances",
		"sign gentx",
		"collect gentxs",
		"validate genesis",
	}, tpl.Pipeline().Names())
}

func TestMinimalSkipsPruning(t *testing.T) {
	tpl, err := FromString("minimal")
	require.NoError(t, err)

	names := tpl.Pipeline().Names()
	require.Len(t, names, 10)
	require.NotContains(t, names, "adjust pruning")
}

func TestSharedParameters(t *testing.T) {
	for _, name := range Names() {
		tpl, err := FromString(name)
		require.NoError(t, err)
		require.Equal(t, uint64(10000000), tpl.BlockMaxGas)
		require.Equal(t, "100000000000000000000000000", tpl.GenesisBalance.String())
		require.Equal(t, "1000000000000000000000", tpl.ValidatorStake.String())
		require.Equal(t, []string{"eth", "txpool", "personal", "net", "debug", "web3"}, tpl.JSONRPCAPI)
	}
}
