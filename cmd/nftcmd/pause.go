// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nftcmd

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

func newPauseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pause <true|false>",
		Short: "Pause or resume minting",
		Long:  `The nft pause command pauses (true) or resumes (false) public minting. Owner only.`,
		RunE:  pause,
		Args:  cobrautils.ExactArgs(1),
	}
	addContractFlags(cmd, "as owner")
	return cmd
}

func pause(_ *cobra.Command, args []string) error {
	paused, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("invalid pause value %q: %w", args[0], err)
	}
	s, err := connect(nftFlags.Address)
	if err != nil {
		return err
	}
	defer s.close()
	description := "Resuming minting"
	if paused {
		description = "Pausing minting"
	}
	receipt, err := s.send(description, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.contract.SetPause(opts, paused)
	})
	if err != nil {
		return err
	}
	event, err := glanger.FindEvent(receipt, s.contract.ParsePauseEvent)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Paused: %t", event.Paused)
	return nil
}
