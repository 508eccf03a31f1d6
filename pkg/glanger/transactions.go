// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SetStage configures the mint window of [stageType]. Executor only.
func (g *Glanger) SetStage(
	opts *bind.TransactOpts,
	stageType *big.Int,
	startTime *big.Int,
	endTime *big.Int,
	maxQuantity *big.Int,
	price *big.Int,
) (*types.Transaction, error) {
	return g.transact(opts, "setStage", stageType, startTime, endTime, maxQuantity, price)
}

func (g *Glanger) SetBaseTokenURI(opts *bind.TransactOpts, uri string) (*types.Transaction, error) {
	return g.transact(opts, "setBaseTokenURI", uri)
}

func (g *Glanger) SetOpenBoxBeforeTokenURI(opts *bind.TransactOpts, uri string) (*types.Transaction, error) {
	return g.transact(opts, "setOpenBoxBeforeTokenURI", uri)
}

func (g *Glanger) SetMaxTotalSupply(opts *bind.TransactOpts, maxTotalSupply *big.Int) (*types.Transaction, error) {
	return g.transact(opts, "setMaxTotalSupply", maxTotalSupply)
}

func (g *Glanger) SetOpenBoxTime(opts *bind.TransactOpts, openBoxTime *big.Int) (*types.Transaction, error) {
	return g.transact(opts, "setOpenBoxTime", openBoxTime)
}

// Mint buys [quantity] tokens for [to] on the open stage, paying opts.Value
func (g *Glanger) Mint(opts *bind.TransactOpts, to common.Address, quantity *big.Int) (*types.Transaction, error) {
	return g.transact(opts, "mint", to, quantity)
}

// ExecutorMint mints [quantity] tokens for [to] without payment. Executor only.
func (g *Glanger) ExecutorMint(opts *bind.TransactOpts, to common.Address, quantity *big.Int) (*types.Transaction, error) {
	return g.transact(opts, "executorMint", to, quantity)
}

func (g *Glanger) Approve(opts *bind.TransactOpts, to common.Address, tokenID *big.Int) (*types.Transaction, error) {
	return g.transact(opts, "approve", to, tokenID)
}

func (g *Glanger) SetApprovalForAll(opts *bind.TransactOpts, operator common.Address, approved bool) (*types.Transaction, error) {
	return g.transact(opts, "setApprovalForAll", operator, approved)
}

func (g *Glanger) TransferFrom(opts *bind.TransactOpts, from common.Address, to common.Address, tokenID *big.Int) (*types.Transaction, error) {
	return g.transact(opts, "transferFrom", from, to, tokenID)
}

func (g *Glanger) SetBlackMarketplaces(opts *bind.TransactOpts, marketplace common.Address, isBlack bool) (*types.Transaction, error) {
	return g.transact(opts, "setBlackMarketplaces", marketplace, isBlack)
}

func (g *Glanger) SetPause(opts *bind.TransactOpts, paused bool) (*types.Transaction, error) {
	return g.transact(opts, "setPause", paused)
}

// WithDrawAll sends the contract balance to [to]. Owner only.
func (g *Glanger) WithDrawAll(opts *bind.TransactOpts, to common.Address) (*types.Transaction, error) {
	return g.transact(opts, "withDrawAll", to)
}

// SetExecutorAddress replaces the executor. Owner only.
func (g *Glanger) SetExecutorAddress(opts *bind.TransactOpts, executor common.Address) (*types.Transaction, error) {
	return g.transact(opts, "setExecutorAddress", executor)
}
