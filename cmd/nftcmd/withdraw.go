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
	"github.com/glanger-labs/glanger-cli/pkg/utils"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

func newWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw <to>",
		Short: "Withdraw the mint proceeds",
		Long:  `The nft withdraw command sends the whole contract balance to the given address. Owner only.`,
		RunE:  withdraw,
		Args:  cobrautils.ExactArgs(1),
	}
	addContractFlags(cmd, "as owner")
	return cmd
}

func withdraw(_ *cobra.Command, args []string) error {
	if !common.IsHexAddress(args[0]) {
		return fmt.Errorf("invalid recipient address %q", args[0])
	}
	to := common.HexToAddress(args[0])
	s, err := connect(nftFlags.Address)
	if err != nil {
		return err
	}
	defer s.close()
	balance, err := s.chain.Client.GetAddressBalance(s.contract.Address())
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("Contract balance: %s ETH", utils.FormatEther(balance))
	if _, err := s.send("Withdrawing to "+to.Hex(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.contract.WithDrawAll(opts, to)
	}); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Withdrew %s ETH to %s", utils.FormatEther(balance), to.Hex())
	return nil
}
