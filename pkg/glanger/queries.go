// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Stage is the configuration of a mint window as stored by the contract
type Stage struct {
	StageType      *big.Int
	StartTime      *big.Int
	EndTime        *big.Int
	MaxQuantity    *big.Int
	MintedQuantity *big.Int
	// wei
	Price *big.Int
}

type CurrentStage struct {
	StageType *big.Int
	IsOpen    bool
	Price     *big.Int
}

// GetStage returns the stage of [stageType]. Builds that do not report the
// minted quantity leave it nil.
func (g *Glanger) GetStage(opts *bind.CallOpts, stageType *big.Int) (Stage, error) {
	out, err := g.call(opts, "getStage", stageType)
	if err != nil {
		return Stage{}, err
	}
	values, err := bigs(out)
	if err != nil {
		return Stage{}, fmt.Errorf("getStage: %w", err)
	}
	stage := Stage{}
	switch len(values) {
	case 6:
		stage.MintedQuantity = values[4]
		stage.Price = values[5]
	case 5:
		stage.Price = values[4]
	default:
		return Stage{}, fmt.Errorf("getStage: %w: %d outputs", ErrUnexpectedType, len(values))
	}
	stage.StageType, stage.StartTime, stage.EndTime, stage.MaxQuantity = values[0], values[1], values[2], values[3]
	return stage, nil
}

func (g *Glanger) CurrentStage(opts *bind.CallOpts) (CurrentStage, error) {
	out, err := g.call(opts, "currentStage")
	if err != nil {
		return CurrentStage{}, err
	}
	if len(out) != 3 {
		return CurrentStage{}, fmt.Errorf("currentStage: %w: %d outputs", ErrUnexpectedType, len(out))
	}
	stageType, err := toBig(out[0])
	if err != nil {
		return CurrentStage{}, fmt.Errorf("currentStage: %w", err)
	}
	isOpen, err := toBool(out[1])
	if err != nil {
		return CurrentStage{}, fmt.Errorf("currentStage: %w", err)
	}
	price, err := toBig(out[2])
	if err != nil {
		return CurrentStage{}, fmt.Errorf("currentStage: %w", err)
	}
	return CurrentStage{StageType: stageType, IsOpen: isOpen, Price: price}, nil
}

func (g *Glanger) GetExecutorAddress(opts *bind.CallOpts) (common.Address, error) {
	return callSingle(g, opts, "getExecutorAddress", toAddress)
}

func (g *Glanger) IsBlackMarketplaces(opts *bind.CallOpts, marketplace common.Address) (bool, error) {
	return callSingle(g, opts, "isBlackMarketplaces", toBool, marketplace)
}

func (g *Glanger) TokenURI(opts *bind.CallOpts, tokenID *big.Int) (string, error) {
	return callSingle(g, opts, "tokenURI", toString, tokenID)
}

func (g *Glanger) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	return callSingle(g, opts, "totalSupply", toBig)
}

func (g *Glanger) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	return callSingle(g, opts, "balanceOf", toBig, owner)
}

func (g *Glanger) OwnerOf(opts *bind.CallOpts, tokenID *big.Int) (common.Address, error) {
	return callSingle(g, opts, "ownerOf", toAddress, tokenID)
}

func (g *Glanger) Name(opts *bind.CallOpts) (string, error) {
	return callSingle(g, opts, "name", toString)
}

func (g *Glanger) Symbol(opts *bind.CallOpts) (string, error) {
	return callSingle(g, opts, "symbol", toString)
}

// Owner returns the Ownable owner
func (g *Glanger) Owner(opts *bind.CallOpts) (common.Address, error) {
	return callSingle(g, opts, "owner", toAddress)
}

func callSingle[T any](
	g *Glanger,
	opts *bind.CallOpts,
	method string,
	convert func(interface{}) (T, error),
	params ...interface{},
) (T, error) {
	var zero T
	out, err := g.call(opts, method, params...)
	if err != nil {
		return zero, err
	}
	if len(out) != 1 {
		return zero, fmt.Errorf("%s: %w: %d outputs", method, ErrUnexpectedType, len(out))
	}
	v, err := convert(out[0])
	if err != nil {
		return zero, fmt.Errorf("%s: %w", method, err)
	}
	return v, nil
}
