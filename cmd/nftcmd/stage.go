// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nftcmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/fixtures"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

var errInvalidStage = errors.New("invalid stage")

type stageFlags struct {
	startTime   int64
	endTime     int64
	maxQuantity uint64
	price       string
}

var setStageFlags stageFlags

func newStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Read and configure mint stages",
		Long: `The nft stage command suite reads and sets the mint windows of the contract.
Stage 1 and stage 2 are the stage types the contract defines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cobrautils.CommandSuiteUsage(cmd, args)
		},
		Args: cobrautils.ExactArgs(0),
	}
	// nft stage set
	cmd.AddCommand(newStageSetCmd())
	// nft stage get
	cmd.AddCommand(newStageGetCmd())
	return cmd
}

func newStageSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <type>",
		Short: "Configure a mint stage",
		Long: `The nft stage set command sets the start, end, per wallet max quantity and
price of a stage. Only the executor can do it.`,
		RunE: setStage,
		Args: cobrautils.ExactArgs(1),
	}
	addContractFlags(cmd, "as executor")
	cmd.Flags().Int64Var(&setStageFlags.startTime, "start", 0, "unix time at which the stage opens")
	cmd.Flags().Int64Var(&setStageFlags.endTime, "end", 0, "unix time at which the stage closes")
	cmd.Flags().Uint64Var(&setStageFlags.maxQuantity, "max-quantity", 0, "max tokens a wallet can mint in the stage")
	cmd.Flags().StringVar(&setStageFlags.price, "price", "0", "price per token, in ether")
	return cmd
}

func newStageGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <type>",
		Short: "Print a mint stage",
		Long:  `The nft stage get command prints the configuration of a stage as stored by the contract.`,
		RunE:  getStage,
		Args:  cobrautils.ExactArgs(1),
	}
	addContractFlags(cmd, "")
	return cmd
}

func parseStageType(s string) (*big.Int, error) {
	stageType, ok := new(big.Int).SetString(s, 10)
	if !ok || stageType.Sign() < 0 {
		return nil, fmt.Errorf("%w type %q", errInvalidStage, s)
	}
	return stageType, nil
}

// stageFromFlags builds the stage of [stageType] described by [flags]
func stageFromFlags(stageType *big.Int, flags stageFlags) (fixtures.Stage, error) {
	price, err := utils.ParseEther(flags.price)
	if err != nil {
		return fixtures.Stage{}, fmt.Errorf("%w price %q: %w", errInvalidStage, flags.price, err)
	}
	if flags.endTime < flags.startTime {
		return fixtures.Stage{}, fmt.Errorf("%w: ends at %d before starting at %d", errInvalidStage, flags.endTime, flags.startTime)
	}
	return fixtures.Stage{
		StageType:   stageType.Uint64(),
		StartTime:   flags.startTime,
		EndTime:     flags.endTime,
		MaxQuantity: flags.maxQuantity,
		Price:       price,
	}, nil
}

func setStage(_ *cobra.Command, args []string) error {
	stageType, err := parseStageType(args[0])
	if err != nil {
		return err
	}
	stage, err := stageFromFlags(stageType, setStageFlags)
	if err != nil {
		return err
	}
	s, err := connect(nftFlags.Address)
	if err != nil {
		return err
	}
	defer s.close()
	receipt, err := s.send("Setting stage "+stageType.String(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return s.contract.SetStage(
			opts,
			stageType,
			big.NewInt(stage.StartTime),
			big.NewInt(stage.EndTime),
			new(big.Int).SetUint64(stage.MaxQuantity),
			stage.Price,
		)
	})
	if err != nil {
		return err
	}
	event, err := glanger.FindEvent(receipt, s.contract.ParseStageEvent)
	if err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser(
		"Stage %s set: %s to %s, max %s, %s ETH",
		event.StageType,
		formatTime(event.StartTime),
		formatTime(event.EndTime),
		event.MaxQuantity,
		utils.FormatEther(event.Price),
	)
	return nil
}

func getStage(_ *cobra.Command, args []string) error {
	stageType, err := parseStageType(args[0])
	if err != nil {
		return err
	}
	s, err := connect(nftFlags.Address)
	if err != nil {
		return err
	}
	defer s.close()
	ctx, cancel := utils.GetAPIContext()
	defer cancel()
	stage, err := s.contract.GetStage(&bind.CallOpts{Context: ctx}, stageType)
	if err != nil {
		return s.describeRevert(err)
	}
	ux.Logger.PrintToUser("%s", stagesTable(summary{Stages: []glanger.Stage{stage}}).Render())
	return nil
}
