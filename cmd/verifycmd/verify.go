// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package verifycmd

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/artifact"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/contract"
	"github.com/glanger-labs/glanger-cli/pkg/deploy"
	"github.com/glanger-labs/glanger-cli/pkg/etherscan"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/models"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

var (
	app *application.Glanger

	chainSpec     contract.ChainSpec
	artifactFlags contract.ArtifactFlags
	executor      string
)

// glanger verify
func NewCmd(injectedApp *application.Glanger) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "verify [address]",
		Short: "Verify the contract source on the network explorer",
		Long: `The verify command submits the standard json input of the compilation that
produced the artifact to the Etherscan compatible explorer of the network, and
waits for the explorer to accept it.

The address defaults to the last deployment recorded for the network. Its
constructor arguments are taken from that record, or from the environment like
glanger deploy does when the address was not deployed by this tool.

Requires ETHERSCAN_API_KEY.`,
		RunE: verify,
		Args: cobrautils.MaximumNArgs(1),
	}
	chainSpec.AddToCmd(cmd)
	artifactFlags.AddToCmd(cmd)
	cmd.Flags().StringVar(&executor, "executor", "", "executor the contract was deployed with, when it was not deployed by this tool")
	return cmd
}

// constructorParams returns the arguments [address] was deployed with
func constructorParams(network string, address common.Address) (glanger.ConstructorParams, error) {
	deployment, err := app.GetDeployment(constants.ContractName, network)
	if err == nil && deployment.Address == address {
		return glanger.ConstructorParams{
			BaseTokenURI:          deployment.BaseTokenURI,
			OpenBoxBeforeTokenURI: deployment.OpenBoxBeforeTokenURI,
			MaxTotalSupply:        new(big.Int).SetUint64(deployment.MaxTotalSupply),
			OpenBoxTime:           big.NewInt(deployment.OpenBoxTime),
			Executor:              deployment.Executor,
		}, nil
	}
	if err != nil && !errors.Is(err, models.ErrNotDeployed) {
		return glanger.ConstructorParams{}, err
	}
	params := deploy.ParamsFromEnv(app.Conf)
	if executor != "" {
		params.Executor = executor
	}
	return params.ConstructorParams()
}

func verify(_ *cobra.Command, args []string) error {
	network, err := contract.GetNetwork(app, chainSpec)
	if err != nil {
		return err
	}
	explorer, err := app.Conf.EtherscanFor(network)
	if err != nil {
		return err
	}
	client, err := etherscan.New(explorer.APIURL, explorer.BrowserURL, explorer.APIKey, app.Log)
	if err != nil {
		return fmt.Errorf("network %s: %w", network.Name, err)
	}
	address, err := contract.ResolveAddress(app, network.Name, args)
	if err != nil {
		return err
	}
	artifactPath := contract.ArtifactPath(app, artifactFlags)
	a, err := artifact.Load(artifactPath)
	if err != nil {
		return err
	}
	buildInfo, err := artifact.BuildInfo(artifactPath)
	if err != nil {
		return err
	}
	params, err := constructorParams(network.Name, address)
	if err != nil {
		return err
	}
	constructorArgs, err := glanger.EncodeConstructorArgs(a.ABI, params)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.VerificationTimeout)
	defer cancel()
	status, err := ux.SpinWhile(
		fmt.Sprintf("Verifying %s at %s on %s", constants.ContractName, address.Hex(), network.Name),
		func() (etherscan.Status, error) {
			return client.Verify(ctx, etherscan.Request{
				Address:         address,
				SourceCode:      buildInfo.Input,
				ContractName:    a.FullyQualifiedName(),
				CompilerVersion: buildInfo.CompilerVersion(),
				ConstructorArgs: constructorArgs,
			})
		},
	)
	if err != nil {
		ux.Logger.RedXToUser("%s was not verified on %s", address.Hex(), network.Name)
		return err
	}

	if sc, err := app.LoadSidecar(constants.ContractName); err == nil {
		if deployment, err := sc.Deployment(network.Name); err == nil && deployment.Address == address {
			deployment.Verified = true
			sc.SetDeployment(network.Name, deployment)
			if err := app.UpdateSidecar(&sc); err != nil {
				return err
			}
		}
	}
	ux.Logger.GreenCheckmarkToUser("%s %s", constants.ContractName, status)
	if url := client.AddressURL(address); url != "" {
		ux.Logger.PrintToUser("%s", url)
	}
	return nil
}
