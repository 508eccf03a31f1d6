// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/artifact"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/deploy"
	"github.com/glanger-labs/glanger-cli/pkg/evm"
	"github.com/glanger-labs/glanger-cli/pkg/fixtures"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
)

const nodeTimeout = 30 * time.Second

// Harness connects to the development chain and deploys one contract per test.
// Every test runs between a snapshot and its revert, so clock moves and state
// changes do not leak into the next one.
type Harness struct {
	Client   evm.Client
	Raw      evm.RawClient
	ChainID  *big.Int
	Artifact *artifact.Artifact
	Signers  []accounts.Signer

	Fixture  fixtures.Configs
	Contract *glanger.Glanger

	snapshot string
}

func NewHarness() (*Harness, error) {
	artifactPath, err := ArtifactPath()
	if err != nil {
		return nil, err
	}
	art, err := artifact.Load(artifactPath)
	if err != nil {
		return nil, err
	}
	client, err := evm.GetClient(RPCURL())
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), nodeTimeout)
	defer cancel()
	if err := client.WaitForNode(ctx); err != nil {
		client.Close()
		return nil, err
	}
	raw, err := evm.GetRawClient(RPCURL())
	if err != nil {
		client.Close()
		return nil, err
	}
	chainID, err := client.GetChainID()
	if err != nil {
		client.Close()
		raw.Close()
		return nil, err
	}
	signers, err := accounts.FromMnemonic(constants.DefaultLocalMnemonic, constants.LocalAccountsHDPath, OtherIndex+1)
	if err != nil {
		client.Close()
		raw.Close()
		return nil, err
	}
	return &Harness{
		Client:   client,
		Raw:      raw,
		ChainID:  chainID,
		Artifact: art,
		Signers:  signers,
	}, nil
}

func (h *Harness) Owner() accounts.Signer    { return h.Signers[OwnerIndex] }
func (h *Harness) Executor() accounts.Signer { return h.Signers[ExecutorIndex] }
func (h *Harness) Buyer() accounts.Signer    { return h.Signers[BuyerIndex] }
func (h *Harness) Other() accounts.Signer    { return h.Signers[OtherIndex] }

// Setup snapshots the chain, rebases the fixture on the chain clock and deploys
// a fresh contract owned by the first account with the second as executor
func (h *Harness) Setup() error {
	snapshot, err := h.Raw.Snapshot()
	if err != nil {
		return err
	}
	h.snapshot = snapshot
	now, err := h.Client.LatestBlockTimestamp()
	if err != nil {
		return err
	}
	h.Fixture = fixtures.FromEnv(nil).Rebase(int64(now))
	ctx, cancel := context.WithTimeout(context.Background(), constants.TxConfirmationTimeout)
	defer cancel()
	result, err := deploy.Run(ctx, deploy.Deployer{
		Client:   h.Client.EthClient,
		Signer:   h.Owner(),
		Bytecode: h.Artifact.Bytecode,
		ABI:      &h.Artifact.ABI,
		Log:      zap.NewNop(),
	}, deploy.Params{
		BaseTokenURI:          h.Fixture.BaseTokenURI,
		OpenBoxBeforeTokenURI: h.Fixture.OpenBoxBeforeURI,
		MaxTotalSupply:        h.Fixture.TotalSupply,
		OpenBoxTime:           h.Fixture.OpenBoxTime,
		Executor:              h.Executor().Address.Hex(),
	})
	if err != nil {
		return err
	}
	h.Contract = result.Contract
	return nil
}

// Teardown restores the chain to the snapshot taken by Setup
func (h *Harness) Teardown() error {
	if h.snapshot == "" {
		return nil
	}
	snapshot := h.snapshot
	h.snapshot = ""
	return h.Raw.Revert(snapshot)
}

func (h *Harness) Close() {
	h.Client.Close()
	h.Raw.Close()
}

// Send signs [transact] with [signer] and waits for the receipt
func (h *Harness) Send(
	signer accounts.Signer,
	transact func(*bind.TransactOpts) (*types.Transaction, error),
) (*types.Receipt, error) {
	opts, err := signer.TransactOpts(h.ChainID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.TxConfirmationTimeout)
	defer cancel()
	opts.Context = ctx
	tx, err := transact(opts)
	if err != nil {
		return nil, err
	}
	return h.Contract.WaitMined(ctx, tx)
}

// SetStage configures [stage] from the executor account
func (h *Harness) SetStage(stage fixtures.Stage) (*types.Receipt, error) {
	return h.SetStageFrom(h.Executor(), stage)
}

func (h *Harness) SetStageFrom(signer accounts.Signer, stage fixtures.Stage) (*types.Receipt, error) {
	return h.Send(signer, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return h.Contract.SetStage(
			opts,
			new(big.Int).SetUint64(stage.StageType),
			big.NewInt(stage.StartTime),
			big.NewInt(stage.EndTime),
			new(big.Int).SetUint64(stage.MaxQuantity),
			stage.Price,
		)
	})
}

// Mint buys [quantity] tokens for the buyer paying [value]
func (h *Harness) Mint(quantity uint64, value *big.Int) (*types.Receipt, error) {
	buyer := h.Buyer()
	return h.Send(buyer, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		opts.Value = value
		return h.Contract.Mint(opts, buyer.Address, new(big.Int).SetUint64(quantity))
	})
}

// Call returns read options bound to a short lived context
func (*Harness) Call() *bind.CallOpts {
	return &bind.CallOpts{Context: context.Background()}
}

// SecondsUntil is the clock move needed for the chain to reach [timestamp]
func (h *Harness) SecondsUntil(timestamp int64) (uint64, error) {
	now, err := h.Raw.LatestBlockTimestamp()
	if err != nil {
		return 0, err
	}
	if timestamp <= int64(now) {
		return 0, fmt.Errorf("timestamp %d is not after the chain time %d", timestamp, now)
	}
	return uint64(timestamp - int64(now)), nil
}
