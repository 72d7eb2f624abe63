package cluster

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/evmosup/evmosup/evmosup/config"
	"github.com/evmosup/evmosup/evmosup/env"
	"github.com/evmosup/evmosup/evmosup/console"
	"github.com/evmosup/evmosup/evmosup/node"
	"github.com/evmosup/evmosup/evmosup/pipeline"
	"github.com/evmosup/evmosup/evmosup/templates"
	"github.com/evmosup/evmosup/internal/fileutils"
)

// Cluster is a single local validator node managed from its configuration
type Cluster struct {
	Config   *config.Config
	Node     *node.Binary
	Template templates.Template
	Logger   hclog.Logger

	// Staged runs the bootstrap against a sibling staging directory that
	// replaces the home only once every step succeeded
	Staged bool
}

// New creates a cluster instance
func New(cfg *config.Config, binary *node.Binary, tpl templates.Template, logger hclog.Logger) *Cluster {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cluster{
		Config:   cfg,
		Node:     binary,
		Template: tpl,
		Logger:   logger,
	}
}

func (cl *Cluster) paths() env.Paths {
	return env.Paths{Home: cl.Config.Home}
}

// Initialized reports whether the home directory exists
func (cl *Cluster) Initialized() bool {
	return env.IsInitialized(cl.Config.Home)
}

// Init runs the template pipeline against the home
func (cl *Cluster) Init(ctx context.Context) error {
	logger := cl.Logger.Named("pipeline")
	console.Infof("Bootstrapping %s (%s template, %d accounts)", cl.Config.Home, cl.Template.Name, len(cl.Config.GenesisAccounts))

	target := cl.paths()
	if cl.Staged {
		stage, err := env.Stage(cl.Config.Home)
		if err != nil {
			return err
		}
		target = stage
		logger.Debug("Using staging home", "path", stage.Home)
	}

	pctx := &pipeline.Context{
		Config: cl.Config,
		Paths:  target,
		Node:   cl.Node,
		Logger: logger,
	}
	if err := cl.Template.Pipeline().Run(ctx, pctx); err != nil {
		if cl.Staged {
			if derr := env.Discard(target); derr != nil {
				logger.Warn("Failed to remove staging home", "path", target.Home, "err", derr)
			}
		}
		return err
	}

	if cl.Staged {
		if err := env.Commit(target, cl.Config.Home); err != nil {
			return err
		}
	}
	console.Successf("Node home ready at %s", cl.Config.Home)
	return nil
}

// Run starts the node and blocks until it exits
func (cl *Cluster) Run(ctx context.Context) error {
	return cl.Node.Start(ctx, cl.Config.Home, node.StartOptions{
		ChainID:          cl.Config.ChainID,
		MinimumGasPrices: cl.Config.MinimumGasPricesCoin(),
		JSONRPCAPI:       cl.Template.JSONRPCAPI,
	})
}

// Up bootstraps the home when it does not exist yet, then starts the node.
// An existing home is trusted as is.
func (cl *Cluster) Up(ctx context.Context) error {
	if cl.Initialized() {
		cl.Logger.Info("Home already initialized, skipping bootstrap", "home", cl.Config.Home)
		if genesisPath := cl.paths().GenesisJSON(); !fileutils.FileExists(genesisPath) {
			console.Warnf("%s is missing, the node will probably fail to start", genesisPath)
		}
	} else if err := cl.Init(ctx); err != nil {
		return err
	}
	return cl.Run(ctx)
}

// Role of a configured account
type Role string

const (
	RoleValidator Role = "validator"
	RoleUser      Role = "user"
)

// AccountInfo describes one configured account
type AccountInfo struct {
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	Address string `json:"address,omitempty"` // empty until the home is initialized
}

// Accounts lists the configured accounts. Addresses come from the keyring
// and are only resolved once the home exists.
func (cl *Cluster) Accounts(ctx context.Context) ([]AccountInfo, error) {
	initialized := cl.Initialized()
	infos := make([]AccountInfo, len(cl.Config.GenesisAccounts))
	for i, acc := range cl.Config.GenesisAccounts {
		infos[i] = AccountInfo{Name: acc.Name, Role: RoleUser}
		if i == 0 {
			infos[i].Role = RoleValidator
		}
		if !initialized {
			continue
		}
		address, err := cl.Node.KeysShowAddress(ctx, cl.Config.Home, cl.Config.KeyringBackend, acc.Name)
		if err != nil {
			var toolErr *node.ExternalToolError
			if errors.As(err, &toolErr) && toolErr.ExitCode > 0 {
				cl.Logger.Warn("Key not found in keyring", "name", acc.Name, "err", err)
				continue
			}
			return nil, err
		}
		infos[i].Address = address
	}
	return infos, nil
}
