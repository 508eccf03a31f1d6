// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nft

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/tests/e2e/utils"
)

const twoDays = 2 * 24 * 60 * 60

var h *utils.Harness

func expectRevert(err error, reasonOrName string) {
	gomega.Expect(err).Should(gomega.HaveOccurred())
	var revertErr *glanger.RevertError
	gomega.Expect(errors.As(err, &revertErr)).Should(gomega.BeTrue(), "not a revert: %s", err)
	gomega.Expect(revertErr.Matches(reasonOrName)).Should(gomega.BeTrue(), "unexpected revert: %s", revertErr)
}

func mintedBy(receipt *types.Receipt) *glanger.NFTMintEvent {
	event, err := glanger.FindEvent(receipt, h.Contract.ParseNFTMintEvent)
	gomega.Expect(err).Should(gomega.BeNil())
	return event
}

// mintStage1 opens stage 1 and buys its max quantity at the stage price
func mintStage1() *types.Receipt {
	stage := h.Fixture.Stage1
	_, err := h.SetStage(stage)
	gomega.Expect(err).Should(gomega.BeNil())
	receipt, err := h.Mint(stage.MaxQuantity, stage.Cost(stage.MaxQuantity))
	gomega.Expect(err).Should(gomega.BeNil())
	return receipt
}

var _ = ginkgo.Describe("[GlangerNFT]", ginkgo.Ordered, func() {
	ginkgo.BeforeAll(func() {
		var err error
		h, err = utils.NewHarness()
		gomega.Expect(err).Should(gomega.BeNil())
	})

	ginkgo.AfterAll(func() {
		if h != nil {
			h.Close()
		}
	})

	ginkgo.BeforeEach(func() {
		gomega.Expect(h.Setup()).Should(gomega.Succeed())
	})

	ginkgo.AfterEach(func() {
		gomega.Expect(h.Teardown()).Should(gomega.Succeed())
	})

	ginkgo.Context("tokenURI", func() {
		ginkgo.It("reverts for a token that was never minted", func() {
			_, err := h.Contract.TokenURI(h.Call(), big.NewInt(1))
			expectRevert(err, glanger.ErrorURIQueryForNonexistentToken)
		})
	})

	ginkgo.Context("setStage", func() {
		ginkgo.It("rejects a caller that is not the executor", func() {
			_, err := h.SetStageFrom(h.Owner(), h.Fixture.Stage1)
			expectRevert(err, glanger.ReasonNotExecutor)
		})

		ginkgo.It("emits the stage set by the executor", func() {
			stage := h.Fixture.Stage1
			receipt, err := h.SetStage(stage)
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseStageEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.StageType.Uint64()).Should(gomega.Equal(stage.StageType))
			gomega.Expect(event.StartTime.Int64()).Should(gomega.Equal(stage.StartTime))
			gomega.Expect(event.EndTime.Int64()).Should(gomega.Equal(stage.EndTime))
			gomega.Expect(event.MaxQuantity.Uint64()).Should(gomega.Equal(stage.MaxQuantity))
			gomega.Expect(event.MintedQuantity.Sign()).Should(gomega.Equal(0))
			gomega.Expect(event.Price.Cmp(stage.Price)).Should(gomega.Equal(0))
		})
	})

	ginkgo.Context("metadata", func() {
		ginkgo.It("sets the base token uri", func() {
			_, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetBaseTokenURI(opts, "test")
			})
			gomega.Expect(err).Should(gomega.BeNil())
		})

		ginkgo.It("emits the uri shown before the box opens", func() {
			receipt, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetOpenBoxBeforeTokenURI(opts, "test2")
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseOpenBoxBeforeTokenURIEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.URI).Should(gomega.Equal("test2"))
		})

		ginkgo.It("emits the max total supply", func() {
			receipt, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetMaxTotalSupply(opts, new(big.Int).SetUint64(h.Fixture.TotalSupply))
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseMaxTotalSupplyEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.MaxTotalSupply.Uint64()).Should(gomega.Equal(uint64(7777)))
		})
	})

	ginkgo.Context("setOpenBoxTime", func() {
		ginkgo.It("rejects a caller that is not the executor", func() {
			_, err := h.Send(h.Owner(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetOpenBoxTime(opts, big.NewInt(h.Fixture.NewOpenBoxTime))
			})
			expectRevert(err, glanger.ReasonNotExecutor)
		})

		ginkgo.It("emits the new open box time", func() {
			receipt, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetOpenBoxTime(opts, big.NewInt(h.Fixture.NewOpenBoxTime))
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseOpenBoxTimeEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.OpenBoxTime.Int64()).Should(gomega.Equal(h.Fixture.NewOpenBoxTime))
		})
	})

	ginkgo.Context("getStage", func() {
		ginkgo.It("returns the stage set by the executor", func() {
			stage := h.Fixture.Stage2
			_, err := h.SetStage(stage)
			gomega.Expect(err).Should(gomega.BeNil())
			got, err := h.Contract.GetStage(h.Call(), new(big.Int).SetUint64(stage.StageType))
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(got.StageType.Uint64()).Should(gomega.Equal(uint64(2)))
		})

		ginkgo.It("follows an executor handover", func() {
			_, err := h.Send(h.Owner(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetExecutorAddress(opts, h.Owner().Address)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			_, err = h.SetStageFrom(h.Owner(), h.Fixture.Stage2)
			gomega.Expect(err).Should(gomega.BeNil())
			got, err := h.Contract.GetStage(h.Call(), big.NewInt(2))
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(got.StageType.Uint64()).Should(gomega.Equal(uint64(2)))
		})
	})

	ginkgo.Context("getExecutorAddress", func() {
		ginkgo.It("returns the constructor executor", func() {
			executor, err := h.Contract.GetExecutorAddress(h.Call())
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(executor).Should(gomega.Equal(h.Executor().Address))
		})
	})

	ginkgo.Context("currentStage", func() {
		ginkgo.It("can be read on a fresh contract", func() {
			_, err := h.Contract.CurrentStage(h.Call())
			gomega.Expect(err).Should(gomega.BeNil())
		})
	})

	ginkgo.Context("executorMint", func() {
		ginkgo.It("mints for free once the clock moved", func() {
			_, err := h.SetStage(h.Fixture.Stage1)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(h.Raw.TimeTravel(twoDays)).Should(gomega.Succeed())

			supply, err := h.Contract.TotalSupply(h.Call())
			gomega.Expect(err).Should(gomega.BeNil())
			ownerBalance, err := h.Contract.BalanceOf(h.Call(), h.Owner().Address)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(supply.Cmp(ownerBalance)).Should(gomega.Equal(0))

			executor := h.Executor().Address
			receipt, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.ExecutorMint(opts, executor, new(big.Int).SetUint64(h.Fixture.Stage1.MaxQuantity))
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event := mintedBy(receipt)
			gomega.Expect(event.StageType.Sign()).Should(gomega.Equal(0))
			gomega.Expect(event.LastTokenID.Int64()).Should(gomega.Equal(int64(2)))
			gomega.Expect(event.To).Should(gomega.Equal(executor))
			gomega.Expect(event.Quantity.Int64()).Should(gomega.Equal(int64(3)))
			gomega.Expect(event.Price.Sign()).Should(gomega.Equal(0))
		})

		ginkgo.It("lets the minted tokens be transferred", func() {
			_, err := h.SetStage(h.Fixture.Stage1)
			gomega.Expect(err).Should(gomega.BeNil())
			executor := h.Executor().Address
			_, err = h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.ExecutorMint(opts, executor, big.NewInt(3))
			})
			gomega.Expect(err).Should(gomega.BeNil())
			receipt, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.TransferFrom(opts, executor, h.Buyer().Address, big.NewInt(0))
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseTransferEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.From).Should(gomega.Equal(executor))
			gomega.Expect(event.To).Should(gomega.Equal(h.Buyer().Address))
			gomega.Expect(event.TokenID.Sign()).Should(gomega.Equal(0))
		})
	})

	ginkgo.Context("mint", func() {
		ginkgo.It("reverts while paused", func() {
			stage := h.Fixture.Stage1
			_, err := h.SetStage(stage)
			gomega.Expect(err).Should(gomega.BeNil())
			_, err = h.Send(h.Owner(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetPause(opts, true)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			_, err = h.Mint(stage.MaxQuantity, stage.Cost(stage.MaxQuantity))
			expectRevert(err, glanger.ReasonNFTNotOpen)
		})

		ginkgo.It("reverts when no stage was set", func() {
			stage := h.Fixture.Stage1
			_, err := h.Mint(stage.MaxQuantity, stage.Cost(stage.MaxQuantity))
			expectRevert(err, glanger.ReasonStageNotOpen)
		})

		ginkgo.It("reverts once the stage closed", func() {
			stage := h.Fixture.Stage1
			_, err := h.SetStage(stage)
			gomega.Expect(err).Should(gomega.BeNil())
			seconds, err := h.SecondsUntil(stage.EndTime + 1)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(h.Raw.TimeTravel(seconds)).Should(gomega.Succeed())
			_, err = h.Mint(stage.MaxQuantity, stage.Cost(stage.MaxQuantity))
			expectRevert(err, glanger.ReasonStageNotOpen)
		})

		ginkgo.It("emits the mint paid at the stage price", func() {
			stage := h.Fixture.Stage1
			event := mintedBy(mintStage1())
			gomega.Expect(event.StageType.Uint64()).Should(gomega.Equal(stage.StageType))
			gomega.Expect(event.LastTokenID.Uint64()).Should(gomega.Equal(stage.MaxQuantity - 1))
			gomega.Expect(event.To).Should(gomega.Equal(h.Buyer().Address))
			gomega.Expect(event.Quantity.Uint64()).Should(gomega.Equal(stage.MaxQuantity))
			gomega.Expect(event.Price.Cmp(stage.Price)).Should(gomega.Equal(0))

			balance, err := h.Contract.BalanceOf(h.Call(), h.Buyer().Address)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(balance.String()).Should(gomega.Equal("3"))
		})
	})

	ginkgo.Context("approvals", func() {
		ginkgo.It("emits Approval", func() {
			mintStage1()
			receipt, err := h.Send(h.Buyer(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.Approve(opts, h.Other().Address, big.NewInt(0))
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseApprovalEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.Owner).Should(gomega.Equal(h.Buyer().Address))
			gomega.Expect(event.Approved).Should(gomega.Equal(h.Other().Address))
		})

		ginkgo.It("emits ApprovalForAll", func() {
			mintStage1()
			receipt, err := h.Send(h.Buyer(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetApprovalForAll(opts, h.Other().Address, true)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseApprovalForAllEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.Operator).Should(gomega.Equal(h.Other().Address))
			gomega.Expect(event.Approved).Should(gomega.BeTrue())
		})
	})

	ginkgo.Context("setBlackMarketplaces", func() {
		ginkgo.It("clears a marketplace", func() {
			marketplace := h.Buyer().Address
			_, err := h.Send(h.Executor(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetBlackMarketplaces(opts, marketplace, false)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			black, err := h.Contract.IsBlackMarketplaces(h.Call(), marketplace)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(black).Should(gomega.BeFalse())
		})
	})

	ginkgo.Context("owner", func() {
		ginkgo.It("pauses", func() {
			receipt, err := h.Send(h.Owner(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetPause(opts, true)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParsePauseEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.Paused).Should(gomega.BeTrue())
		})

		ginkgo.It("withdraws the mint proceeds", func() {
			mintStage1()
			to := h.Other().Address
			before, err := h.Client.GetAddressBalance(to)
			gomega.Expect(err).Should(gomega.BeNil())
			_, err = h.Send(h.Owner(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.WithDrawAll(opts, to)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			after, err := h.Client.GetAddressBalance(to)
			gomega.Expect(err).Should(gomega.BeNil())
			stage := h.Fixture.Stage1
			gomega.Expect(new(big.Int).Sub(after, before).Cmp(stage.Cost(stage.MaxQuantity))).Should(gomega.Equal(0))
			contractBalance, err := h.Client.GetAddressBalance(h.Contract.Address())
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(contractBalance.Sign()).Should(gomega.Equal(0))
			tokens, err := h.Contract.BalanceOf(h.Call(), h.Buyer().Address)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(tokens.Int64()).Should(gomega.Equal(int64(3)))
		})

		ginkgo.It("hands over the executor role", func() {
			receipt, err := h.Send(h.Owner(), func(opts *bind.TransactOpts) (*types.Transaction, error) {
				return h.Contract.SetExecutorAddress(opts, h.Buyer().Address)
			})
			gomega.Expect(err).Should(gomega.BeNil())
			event, err := glanger.FindEvent(receipt, h.Contract.ParseExecutorAddressEvent)
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(event.Executor).Should(gomega.Equal(h.Buyer().Address))
			executor, err := h.Contract.GetExecutorAddress(h.Call())
			gomega.Expect(err).Should(gomega.BeNil())
			gomega.Expect(executor).Should(gomega.Equal(h.Buyer().Address))
		})
	})
})
