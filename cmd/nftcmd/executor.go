// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nftcmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

func newExecutorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "executor <address>",
		Short: "Change the executor",
		Long:  `The nft executor command hands the executor role to the given address. Owner only.`,
		RunE:  setExecutor,
		Args:  cobrautils.ExactArgs(1),
	}
	addContractFlags(cmd, "as owner")
	return cmd
}

func setExecutor(_ *cobra.Command, args []string) error {
	if !common.IsHexAddress(args[0]) {
		return fmt.Errorf("invalid executor address %q", args[0])
	}
	executor := common.HexToAddress(args[0])
	s, err := connect(nftFlags.Address)
	if err != nil {
		return err
	}
	defer s.close()
	receipt, err := s.send("Setting executor "+executor.Hex(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.contract.SetExecutorAddress(opts, executor)
	})
	if err != nil {
		return err
	}
	event, err := glanger.FindEvent(receipt, s.contract.ParseExecutorAddressEvent)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Executor: %s", event.Executor.Hex())
	return nil
}
