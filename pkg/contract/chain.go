// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/evm"
)

// ChainSpec selects the network a command talks to
type ChainSpec struct {
	Network string
	// overrides the rpc url of the network
	RPCEndpoint string
}

func (cs *ChainSpec) AddToCmd(cmd *cobra.Command) {
	cobrautils.AddFlagGroup(cmd, "Network Flags", func(set *pflag.FlagSet) {
		set.StringVar(&cs.Network, "network", "", "network to use, the configured default network if empty")
		set.StringVar(&cs.RPCEndpoint, "rpc", "", "rpc endpoint overriding the network url")
	})
}

// Chain is a connected network
type Chain struct {
	Network config.Network
	Client  evm.Client
	ChainID *big.Int
}

func (c Chain) Close() {
	c.Client.Close()
}

// Signers returns the accounts configured for the network
func (c Chain) Signers() ([]accounts.Signer, error) {
	return accounts.FromNetwork(c.Network)
}

// GetNetwork resolves and validates the network selected by [cs]
func GetNetwork(app *application.Glanger, cs ChainSpec) (config.Network, error) {
	network, err := app.Conf.Network(cs.Network)
	if err != nil {
		return config.Network{}, err
	}
	if cs.RPCEndpoint != "" {
		network.RPCURL = cs.RPCEndpoint
	}
	if err := network.Validate(); err != nil {
		return config.Network{}, err
	}
	return network, nil
}

// Connect dials the network selected by [cs] and checks its chain id against
// the configured one, when there is one
func Connect(app *application.Glanger, cs ChainSpec) (Chain, error) {
	network, err := GetNetwork(app, cs)
	if err != nil {
		return Chain{}, err
	}
	client, err := evm.GetClient(network.RPCURL)
	if err != nil {
		return Chain{}, err
	}
	chainID, err := client.GetChainID()
	if err != nil {
		client.Close()
		return Chain{}, err
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		client.Close()
		return Chain{}, fmt.Errorf(
			"%w %s: rpc reports chain id %s, expected %d",
			config.ErrInvalidNetwork,
			network.Name,
			chainID,
			network.ChainID,
		)
	}
	app.Log.Info("connected",
		zap.String("network", network.Name),
		zap.String("url", network.RPCURL),
		zap.String("chainID", chainID.String()),
	)
	return Chain{Network: network, Client: client, ChainID: chainID}, nil
}
