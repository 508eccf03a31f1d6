// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/contract"
	"github.com/glanger-labs/glanger-cli/pkg/deploy"
	"github.com/glanger-labs/glanger-cli/pkg/gasreport"
	"github.com/glanger-labs/glanger-cli/pkg/models"
	"github.com/glanger-labs/glanger-cli/pkg/prompts"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

type DeployFlags struct {
	Chain           contract.ChainSpec
	Artifact        contract.ArtifactFlags
	PrivateKeyFlags contract.PrivateKeyFlags
	baseURI         string
	placeholderURI  string
	maxSupply       uint64
	openBoxTime     int64
	executor        string
}

var (
	app         *application.Glanger
	deployFlags DeployFlags
)

// glanger deploy
func NewCmd(injectedApp *application.Glanger) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the GlangerNFT contract",
		Long: `The deploy command sends the GlangerNFT creation transaction to the selected
network and waits for it to be mined.

Constructor arguments default to the environment: NFT_METADATA_URL is the base
token uri and NEXT_PUBLIC_EXECUTE_ADDRESS the executor. The placeholder uri
defaults to hidden.json, the max supply to 7777 and the open box time to
1669445844. Flags override any of them.

The deployed address is recorded so later nft commands can omit it.`,
		RunE: deployContract,
		Args: cobrautils.ExactArgs(0),
	}
	deployFlags.Chain.AddToCmd(cmd)
	deployFlags.Artifact.AddToCmd(cmd)
	deployFlags.PrivateKeyFlags.AddToCmd(cmd, "as contract deployer")
	cmd.Flags().StringVar(&deployFlags.baseURI, "base-uri", "", "base token uri, overrides $"+constants.NFTMetadataURLEnvVar)
	cmd.Flags().StringVar(&deployFlags.placeholderURI, "placeholder-uri", constants.DefaultOpenBoxBeforeTokenURI, "token uri served before the box is opened")
	cmd.Flags().Uint64Var(&deployFlags.maxSupply, "max-supply", constants.DefaultMaxTotalSupply, "max total supply")
	cmd.Flags().Int64Var(&deployFlags.openBoxTime, "open-box-time", constants.DefaultOpenBoxTime, "unix time at which the box opens")
	cmd.Flags().StringVar(&deployFlags.executor, "executor", "", "executor address, overrides $"+constants.ExecuteAddressEnvVar)
	return cmd
}

// paramsFromFlags returns the environment params overridden by the flags set on [cmd]
func paramsFromFlags(cmd *cobra.Command, flags DeployFlags) deploy.Params {
	params := deploy.ParamsFromEnv(app.Conf)
	if cmd.Flags().Changed("base-uri") {
		params.BaseTokenURI = flags.baseURI
	}
	params.OpenBoxBeforeTokenURI = flags.placeholderURI
	params.MaxTotalSupply = flags.maxSupply
	params.OpenBoxTime = flags.openBoxTime
	if flags.executor != "" {
		params.Executor = flags.executor
	}
	return params
}

func deployContract(cmd *cobra.Command, _ []string) error {
	params := paramsFromFlags(cmd, deployFlags)
	a, err := contract.LoadArtifact(app, deployFlags.Artifact)
	if err != nil {
		return err
	}
	chain, err := contract.Connect(app, deployFlags.Chain)
	if err != nil {
		return err
	}
	defer chain.Close()
	signer, err := deployFlags.PrivateKeyFlags.ChainSigner(app.Prompt, chain, "deploy the contract")
	if err != nil {
		return err
	}
	if params.Executor == "" {
		ux.Logger.PrintToUser("The executor can set stages, mint without paying and change uris.")
		executor, err := prompts.PromptAddress(app.Prompt, "act as executor", []common.Address{signer.Address})
		if err != nil {
			return err
		}
		params.Executor = executor.Hex()
	}
	reporter := gasreport.New(constants.ContractName, app.Conf.GasReporter)
	result, err := deploy.Run(context.Background(), deploy.Deployer{
		Client:   chain.Client.EthClient,
		Signer:   signer,
		Bytecode: a.Bytecode,
		ABI:      &a.ABI,
		Recorder: reporter,
		Log:      app.Log,
	}, params)
	if err != nil {
		return err
	}
	if err := app.RecordDeployment(constants.ContractName, chain.Network.Name, models.NetworkData{
		Address:               result.Address,
		TxHash:                result.TxHash,
		BlockNumber:           result.BlockNumber,
		GasUsed:               result.GasUsed,
		ChainID:               chain.ChainID.Uint64(),
		Deployer:              signer.Address,
		Executor:              common.HexToAddress(params.Executor),
		BaseTokenURI:          params.BaseTokenURI,
		OpenBoxBeforeTokenURI: params.OpenBoxBeforeTokenURI,
		MaxTotalSupply:        params.MaxTotalSupply,
		OpenBoxTime:           params.OpenBoxTime,
	}); err != nil {
		return err
	}
	reporter.Print()
	ux.Logger.GreenCheckmarkToUser("%s deployed on %s", constants.ContractName, chain.Network.Name)
	return nil
}
