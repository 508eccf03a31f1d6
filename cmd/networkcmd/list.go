// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/models"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lists the configured networks",
		Long: `The network list command prints every configured network with its rpc
endpoint, chain id, signer source and the GlangerNFT deployment recorded on it.`,
		RunE: listNetworks,
		Args: cobrautils.ExactArgs(0),
	}
}

func listNetworks(*cobra.Command, []string) error {
	sc, err := app.LoadSidecar(constants.ContractName)
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("%s", networksTable(app.Conf, sc).Render())
	return nil
}

func networksTable(conf *config.Config, sc models.Sidecar) table.Writer {
	t := ux.DefaultTable(
		"Networks",
		table.Row{"Name", "RPC URL", "Chain ID", "Signers", "Explorer", constants.ContractName},
	)
	for _, name := range conf.NetworkNames() {
		network := conf.Networks[name]
		label := name
		if name == conf.DefaultNetwork {
			label += " (default)"
		}
		chainID := "-"
		if network.ChainID != 0 {
			chainID = strconv.FormatUint(network.ChainID, 10)
		}
		deployed := "-"
		if deployment, err := sc.Deployment(name); err == nil {
			deployed = deployment.Address.Hex()
			if deployment.Verified {
				deployed += " (verified)"
			}
		}
		explorer := network.EtherscanBrowserURL
		if explorer == "" {
			explorer = "-"
		}
		t.AppendRow(table.Row{
			label,
			maskSecret(network.RPCURL, conf.Getenv(constants.AlchemyAPIKeyEnvVar)),
			chainID,
			signers(network),
			explorer,
			deployed,
		})
	}
	return t
}

func signers(network config.Network) string {
	switch {
	case len(network.Accounts) > 0:
		return strconv.Itoa(len(network.Accounts)) + " private key(s)"
	case network.Mnemonic != "":
		return "mnemonic"
	default:
		return "none"
	}
}

// maskSecret hides [secret] inside [s], keeping its last 4 characters
func maskSecret(s string, secret string) string {
	if secret == "" {
		return s
	}
	visible := ""
	if len(secret) > 8 {
		visible = secret[len(secret)-4:]
	}
	return strings.ReplaceAll(s, secret, "****"+visible)
}
