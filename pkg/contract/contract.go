// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/artifact"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

var ErrNoAddress = errors.New("no contract address given and no deployment recorded")

type ArtifactFlags struct {
	Path string
}

func (af *ArtifactFlags) AddToCmd(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&af.Path,
		"artifact",
		"",
		fmt.Sprintf("compiled contract artifact, defaults to $%s or ./%s", constants.ArtifactPathEnvVar, artifact.PathFor(".", constants.ContractName)),
	)
}

// ArtifactPath returns the artifact file to use: the flag, then the environment,
// then the hardhat layout under the working directory
func ArtifactPath(app *application.Glanger, af ArtifactFlags) string {
	if af.Path != "" {
		return utils.ExpandHome(af.Path)
	}
	if path := app.Conf.Getenv(constants.ArtifactPathEnvVar); path != "" {
		return utils.ExpandHome(path)
	}
	return artifact.PathFor(".", constants.ContractName)
}

// LoadArtifact loads the artifact selected by [af]
func LoadArtifact(app *application.Glanger, af ArtifactFlags) (*artifact.Artifact, error) {
	return artifact.Load(ArtifactPath(app, af))
}

// Options returns the binding options for the artifact selected by [af]. A
// missing artifact falls back to the embedded abi.
func Options(app *application.Glanger, af ArtifactFlags, extra ...glanger.Option) ([]glanger.Option, error) {
	opts := []glanger.Option{}
	a, err := LoadArtifact(app, af)
	switch {
	case err == nil:
		opts = append(opts, glanger.WithABI(a.ABI))
	case errors.Is(err, artifact.ErrNotFound) && af.Path == "":
		app.Log.Debug("no artifact found, using embedded abi", zap.Error(err))
	default:
		return nil, err
	}
	return append(opts, extra...), nil
}

// ResolveAddress returns the contract address given in [args], or the
// address recorded by the last deployment on [network]
func ResolveAddress(app *application.Glanger, network string, args []string) (common.Address, error) {
	if len(args) > 0 && args[0] != "" {
		if !common.IsHexAddress(args[0]) {
			return common.Address{}, fmt.Errorf("invalid contract address %q", args[0])
		}
		return common.HexToAddress(args[0]), nil
	}
	deployment, err := app.GetDeployment(constants.ContractName, network)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrNoAddress, err)
	}
	return deployment.Address, nil
}

// Bind returns a binding of the contract at [address] on [chain]
func Bind(
	app *application.Glanger,
	chain Chain,
	af ArtifactFlags,
	address common.Address,
	extra ...glanger.Option,
) (*glanger.Glanger, error) {
	opts, err := Options(app, af, extra...)
	if err != nil {
		return nil, err
	}
	deployed, err := chain.Client.ContractAlreadyDeployed(address)
	if err != nil {
		return nil, err
	}
	if !deployed {
		return nil, fmt.Errorf("no contract code at %s on %s", address.Hex(), chain.Network.Name)
	}
	return glanger.New(address, chain.Client.EthClient, opts...), nil
}
