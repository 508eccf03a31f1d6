// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nftcmd

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

// stage types the contract defines
var stageTypes = []int64{1, 2}

type summary struct {
	Address      common.Address
	Name         string
	Symbol       string
	TotalSupply  *big.Int
	Owner        common.Address
	Executor     common.Address
	Balance      *big.Int
	CurrentStage glanger.CurrentStage
	Stages       []glanger.Stage
}

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [address]",
		Short: "Print the state of a GlangerNFT contract",
		Long: `The nft describe command prints the token metadata, roles, balance and mint
stages of a deployed contract.`,
		RunE: describe,
		Args: cobrautils.MaximumNArgs(1),
	}
	addContractFlags(cmd, "")
	return cmd
}

func describe(_ *cobra.Command, args []string) error {
	address := nftFlags.Address
	if len(args) > 0 {
		address = args[0]
	}
	s, err := connect(address)
	if err != nil {
		return err
	}
	defer s.close()
	ctx, cancel := utils.GetAPILargeContext()
	defer cancel()
	sum, err := loadSummary(ctx, s)
	if err != nil {
		return err
	}
	ux.Logger.PrintToUser("%s", summaryTable(sum).Render())
	ux.Logger.PrintToUser("%s", stagesTable(sum).Render())
	return nil
}

// loadSummary reads the contract state with concurrent calls
func loadSummary(ctx context.Context, s *session) (summary, error) {
	c := s.contract
	sum := summary{Address: c.Address(), Stages: make([]glanger.Stage, len(stageTypes))}
	g, ctx := errgroup.WithContext(ctx)
	opts := &bind.CallOpts{Context: ctx}
	g.Go(func() (err error) {
		sum.Name, err = c.Name(opts)
		return err
	})
	g.Go(func() (err error) {
		sum.Symbol, err = c.Symbol(opts)
		return err
	})
	g.Go(func() (err error) {
		sum.TotalSupply, err = c.TotalSupply(opts)
		return err
	})
	g.Go(func() (err error) {
		sum.Owner, err = c.Owner(opts)
		return err
	})
	g.Go(func() (err error) {
		sum.Executor, err = c.GetExecutorAddress(opts)
		return err
	})
	g.Go(func() (err error) {
		sum.CurrentStage, err = c.CurrentStage(opts)
		return err
	})
	g.Go(func() (err error) {
		sum.Balance, err = s.chain.Client.GetAddressBalance(c.Address())
		return err
	})
	for i, stageType := range stageTypes {
		g.Go(func() (err error) {
			sum.Stages[i], err = c.GetStage(opts, big.NewInt(stageType))
			return err
		})
	}
	return sum, g.Wait()
}

func summaryTable(sum summary) table.Writer {
	t := ux.KeyValueTable(constants.ContractName)
	currentStage := "none"
	if sum.CurrentStage.StageType != nil && sum.CurrentStage.StageType.Sign() != 0 {
		currentStage = sum.CurrentStage.StageType.String()
		if sum.CurrentStage.IsOpen {
			currentStage += " (open, " + utils.FormatEther(sum.CurrentStage.Price) + " ETH)"
		} else {
			currentStage += " (closed)"
		}
	}
	t.AppendRow(table.Row{"Address", sum.Address.Hex()})
	t.AppendRow(table.Row{"Name", sum.Name})
	t.AppendRow(table.Row{"Symbol", sum.Symbol})
	t.AppendRow(table.Row{"Total Supply", sum.TotalSupply.String()})
	t.AppendRow(table.Row{"Owner", sum.Owner.Hex()})
	t.AppendRow(table.Row{"Executor", sum.Executor.Hex()})
	t.AppendRow(table.Row{"Balance", utils.FormatEther(sum.Balance) + " ETH"})
	t.AppendRow(table.Row{"Current Stage", currentStage})
	return t
}

func stagesTable(sum summary) table.Writer {
	t := ux.DefaultTable(
		"Stages",
		table.Row{"Stage", "Start", "End", "Max Quantity", "Minted", "Price (ETH)"},
	)
	ux.AlignRight(t, 4, 5, 6)
	for _, stage := range sum.Stages {
		minted := "-"
		if stage.MintedQuantity != nil {
			minted = stage.MintedQuantity.String()
		}
		t.AppendRow(table.Row{
			stage.StageType.String(),
			formatTime(stage.StartTime),
			formatTime(stage.EndTime),
			stage.MaxQuantity.String(),
			minted,
			utils.FormatEther(stage.Price),
		})
	}
	return t
}

// formatTime renders unix seconds as UTC RFC3339, and unset times as a dash
func formatTime(unix *big.Int) string {
	if unix == nil || unix.Sign() == 0 {
		return "-"
	}
	if !unix.IsInt64() {
		return unix.String()
	}
	return time.Unix(unix.Int64(), 0).UTC().Format(time.RFC3339) + " (" + strconv.FormatInt(unix.Int64(), 10) + ")"
}
