package templates

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/evmosup/evmosup/evmosup/appconfig"
	"github.com/evmosup/evmosup/evmosup/genesis"
	"github.com/evmosup/evmosup/evmosup/pipeline"
)

// DefaultName is the template used when none is selected
const DefaultName = "extended"

// Template is a bootstrap profile: the chain parameters a local network gets
// and the pipeline that applies them
type Template struct {
	Name             string
	BlockMaxGas      uint64
	GenesisBalance   decimal.Decimal // per account, in base denom units
	ValidatorStake   decimal.Decimal // self-delegation signed in the gentx
	Governance       genesis.GovernancePeriods
	Pruning          *appconfig.PruningPolicy // nil keeps the node's default pruning
	DisabledServices []string                 // app.toml sections switched off after enabling all services
	JSONRPCAPI       []string                 // namespaces served by the JSON-RPC endpoint at launch
}

// Names lists the known templates
func Names() []string {
	return []string{"extended", "minimal"}
}

// FromString returns the template called name
func FromString(name string) (Template, error) {
	switch name {
	case "", "extended":
		return extended(), nil
	case "minimal":
		return minimal(), nil
	}
	return Template{}, fmt.Errorf("unknown template %q (valid: %v)", name, Names())
}

// base holds the parameters shared by every template
func base() Template {
	return Template{
		BlockMaxGas:    10000000,
		GenesisBalance: decimal.RequireFromString("100000000000000000000000000"),
		ValidatorStake: decimal.RequireFromString("1000000000000000000000"),
		Governance: genesis.GovernancePeriods{
			MaxDepositPeriod:      30 * time.Second,
			VotingPeriod:          30 * time.Second,
			ExpeditedVotingPeriod: 15 * time.Second,
		},
		DisabledServices: []string{"rosetta", "memiavl", "versiondb"},
		JSONRPCAPI:       []string{"eth", "txpool", "personal", "net", "debug", "web3"},
	}
}

func extended() Template {
	t := base()
	t.Name = "extended"
	t.Pruning = &appconfig.PruningPolicy{Strategy: "custom", KeepRecent: 2, Interval: 10}
	return t
}

func minimal() Template {
	t := base()
	t.Name = "minimal"
	return t
}

// Steps returns the bootstrap pipeline of the template
func (t Template) Steps() []pipeline.Step {
	steps := []pipeline.Step{
		pipeline.ConfigureClient(),
		pipeline.ImportAccounts(),
		pipeline.InitHome(),
		pipeline.PatchChainParams(t.BlockMaxGas),
		pipeline.ToggleServices(t.DisabledServices...),
		pipeline.ShortenGovernance(t.Governance),
	}
	if t.Pruning != nil {
		steps = append(steps, pipeline.AdjustPruning(*t.Pruning))
	}
	return append(steps,
		pipeline.AllocateBalances(t.GenesisBalance),
		pipeline.SignGentx(t.ValidatorStake),
		pipeline.CollectGentxs(),
		pipeline.ValidateGenesis(),
	)
}

// Pipeline returns the template steps as a runnable pipeline
func (t Template) Pipeline() *pipeline.Pipeline {
	return pipeline.New(t.Steps()...)
}
