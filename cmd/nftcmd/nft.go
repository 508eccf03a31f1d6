// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nftcmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/contract"
	"github.com/glanger-labs/glanger-cli/pkg/gasreport"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

type NFTFlags struct {
	Chain           contract.ChainSpec
	Artifact        contract.ArtifactFlags
	PrivateKeyFlags contract.PrivateKeyFlags
	Address         string
}

var (
	app      *application.Glanger
	nftFlags NFTFlags
)

// glanger nft
func NewCmd(injectedApp *application.Glanger) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "Interact with a deployed GlangerNFT contract",
		Long: `The nft command suite reads and drives a deployed GlangerNFT contract.

The contract address defaults to the last deployment recorded for the network.
Transactions are signed by the first network account unless --account or
--private-key say otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cobrautils.CommandSuiteUsage(cmd, args)
		},
		Args: cobrautils.ExactArgs(0),
	}
	// nft describe
	cmd.AddCommand(newDescribeCmd())
	// nft stage
	cmd.AddCommand(newStageCmd())
	// nft pause
	cmd.AddCommand(newPauseCmd())
	// nft withdraw
	cmd.AddCommand(newWithdrawCmd())
	// nft executor
	cmd.AddCommand(newExecutorCmd())
	return cmd
}

func addContractFlags(cmd *cobra.Command, goal string) {
	nftFlags.Chain.AddToCmd(cmd)
	nftFlags.Artifact.AddToCmd(cmd)
	cmd.Flags().StringVar(&nftFlags.Address, "address", "", "contract address, the recorded deployment if empty")
	if goal != "" {
		nftFlags.PrivateKeyFlags.AddToCmd(cmd, goal)
	}
}

type session struct {
	chain    contract.Chain
	contract *glanger.Glanger
	reporter *gasreport.Reporter
}

// connect binds the contract at [address], or at the recorded deployment if empty
func connect(address string) (*session, error) {
	chain, err := contract.Connect(app, nftFlags.Chain)
	if err != nil {
		return nil, err
	}
	contractAddress, err := contract.ResolveAddress(app, chain.Network.Name, []string{address})
	if err != nil {
		chain.Close()
		return nil, err
	}
	reporter := gasreport.New(constants.ContractName, app.Conf.GasReporter)
	bound, err := contract.Bind(app, chain, nftFlags.Artifact, contractAddress, glanger.WithGasRecorder(reporter))
	if err != nil {
		chain.Close()
		return nil, err
	}
	return &session{chain: chain, contract: bound, reporter: reporter}, nil
}

func (s *session) close() {
	s.reporter.Print()
	s.chain.Close()
}

// send signs with the selected account, sends and waits for one transaction
func (s *session) send(
	description string,
	transact func(*bind.TransactOpts) (*types.Transaction, error),
) (*types.Receipt, error) {
	signer, err := nftFlags.PrivateKeyFlags.ChainSigner(app.Prompt, s.chain, description)
	if err != nil {
		return nil, err
	}
	opts, err := signer.TransactOpts(s.chain.ChainID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.TxConfirmationTimeout)
	defer cancel()
	opts.Context = ctx

	spinSession := ux.NewUserSpinner()
	spinner := spinSession.SpinToUser("%s from %s", description, signer.Address.Hex())
	tx, err := transact(opts)
	if err != nil {
		ux.SpinFailWithError(spinner, "", err)
		spinSession.Stop()
		return nil, s.describeRevert(err)
	}
	receipt, err := s.contract.WaitMined(ctx, tx)
	if err != nil {
		ux.SpinFailWithError(spinner, tx.Hash().Hex(), err)
		spinSession.Stop()
		return nil, err
	}
	ux.SpinComplete(spinner)
	spinSession.Stop()
	ux.Logger.PrintToUser("Tx hash: %s (block %s, gas used %s)",
		tx.Hash().Hex(),
		receipt.BlockNumber,
		ux.ConvertToStringWithThousandSeparator(receipt.GasUsed),
	)
	return receipt, nil
}

// describeRevert rewords contract reverts for the user
func (s *session) describeRevert(err error) error {
	if revert, ok := s.contract.DecodeRevert(err); ok {
		return fmt.Errorf("contract reverted: %w", revert)
	}
	return err
}
