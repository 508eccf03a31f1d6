// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package deploy is the GlangerNFT deployment routine: it resolves the
// constructor parameters, sends the creation transaction and waits for it.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/evm"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

var (
	ErrMissingExecutor = errors.New("executor address is empty")
	ErrInvalidExecutor = errors.New("executor is not a valid hex address")
	ErrInvalidParams   = errors.New("invalid deployment parameters")
)

type Params struct {
	BaseTokenURI          string
	OpenBoxBeforeTokenURI string
	MaxTotalSupply        uint64
	OpenBoxTime           int64
	// hex address, checked by Validate
	Executor string
}

// ParamsFromEnv returns the deployment parameters of the environment:
// NFT_METADATA_URL as base uri and NEXT_PUBLIC_EXECUTE_ADDRESS as executor
func ParamsFromEnv(cfg *config.Config) Params {
	return Params{
		BaseTokenURI:          cfg.Getenv(constants.NFTMetadataURLEnvVar),
		OpenBoxBeforeTokenURI: constants.DefaultOpenBoxBeforeTokenURI,
		MaxTotalSupply:        constants.DefaultMaxTotalSupply,
		OpenBoxTime:           constants.DefaultOpenBoxTime,
		Executor:              cfg.Getenv(constants.ExecuteAddressEnvVar),
	}
}

func (p Params) Validate() error {
	if p.Executor == "" {
		return fmt.Errorf("%w: set %s or pass --executor", ErrMissingExecutor, constants.ExecuteAddressEnvVar)
	}
	if !common.IsHexAddress(p.Executor) {
		return fmt.Errorf("%w: %q", ErrInvalidExecutor, p.Executor)
	}
	if p.OpenBoxTime < 0 {
		return fmt.Errorf("%w: negative open box time %d", ErrInvalidParams, p.OpenBoxTime)
	}
	return nil
}

// ConstructorParams converts validated params into the contract constructor arguments
func (p Params) ConstructorParams() (glanger.ConstructorParams, error) {
	if err := p.Validate(); err != nil {
		return glanger.ConstructorParams{}, err
	}
	return glanger.ConstructorParams{
		BaseTokenURI:          p.BaseTokenURI,
		OpenBoxBeforeTokenURI: p.OpenBoxBeforeTokenURI,
		MaxTotalSupply:        new(big.Int).SetUint64(p.MaxTotalSupply),
		OpenBoxTime:           big.NewInt(p.OpenBoxTime),
		Executor:              common.HexToAddress(p.Executor),
	}, nil
}

// Deployer holds the connection, signer and compiled contract a deployment uses
type Deployer struct {
	Client   evm.EthClient
	Signer   accounts.Signer
	Bytecode []byte
	// abi of the artifact, the embedded one if nil
	ABI      *abi.ABI
	Recorder glanger.GasRecorder
	Log      *zap.Logger
}

type Result struct {
	Address     common.Address
	TxHash      common.Hash
	GasUsed     uint64
	BlockNumber uint64
	Contract    *glanger.Glanger
}

func (d Deployer) options() []glanger.Option {
	opts := []glanger.Option{}
	if d.ABI != nil {
		opts = append(opts, glanger.WithABI(*d.ABI))
	}
	if d.Recorder != nil {
		opts = append(opts, glanger.WithGasRecorder(d.Recorder))
	}
	return opts
}

// Run deploys the contract with [params], waits for the creation receipt and
// reports the deployer, its balance and the new contract address to the user
func Run(ctx context.Context, d Deployer, params Params) (*Result, error) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	constructorParams, err := params.ConstructorParams()
	if err != nil {
		return nil, err
	}
	ux.Logger.PrintToUser("Deploying contracts with the account: %s", d.Signer.Address.Hex())
	balance, err := d.Client.BalanceAt(ctx, d.Signer.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("failure obtaining balance of %s: %w", d.Signer.Address.Hex(), err)
	}
	ux.Logger.PrintToUser("Account balance: %s", balance.String())
	chainID, err := d.Client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failure obtaining chain id: %w", err)
	}
	txOpts, err := d.Signer.TransactOpts(chainID)
	if err != nil {
		return nil, err
	}
	txOpts.Context = ctx
	log.Info("deploying",
		zap.String("deployer", d.Signer.Address.Hex()),
		zap.String("chainID", chainID.String()),
		zap.String("baseTokenURI", params.BaseTokenURI),
		zap.String("openBoxBeforeTokenURI", params.OpenBoxBeforeTokenURI),
		zap.Uint64("maxTotalSupply", params.MaxTotalSupply),
		zap.String("openBoxTime", strconv.FormatInt(params.OpenBoxTime, 10)),
		zap.String("executor", params.Executor),
	)
	address, tx, contract, err := glanger.Deploy(txOpts, d.Client, d.Bytecode, constructorParams, d.options()...)
	if err != nil {
		return nil, fmt.Errorf("failure deploying %s: %w", constants.ContractName, err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, constants.TxConfirmationTimeout)
	defer cancel()
	receipt, err := contract.WaitMined(waitCtx, tx)
	if err != nil {
		return nil, evm.TransactionError(tx, err, "deployment of %s", constants.ContractName)
	}
	ux.Logger.PrintToUser("Token address: %s", address.Hex())
	result := &Result{
		Address:  address,
		TxHash:   tx.Hash(),
		GasUsed:  receipt.GasUsed,
		Contract: contract,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	log.Info("deployed",
		zap.String("address", address.Hex()),
		zap.String("txHash", result.TxHash.Hex()),
		zap.Uint64("gasUsed", result.GasUsed),
		zap.Uint64("block", result.BlockNumber),
	)
	return result, nil
}
