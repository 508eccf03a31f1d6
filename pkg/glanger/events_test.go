// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

var (
	testContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	alice        = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob          = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func TestParseEvents(t *testing.T) {
	g := New(testContract, newFakeBackend(ABI()))

	uriEvent, err := g.ParseOpenBoxBeforeTokenURIEvent(*makeLog(t, ABI(), testContract, EventOpenBoxBeforeTokenURI, "test2"))
	require.NoError(t, err)
	require.Equal(t, "test2", uriEvent.URI)

	supplyEvent, err := g.ParseMaxTotalSupplyEvent(*makeLog(t, ABI(), testContract, EventMaxTotalSupply, big.NewInt(7777)))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(7777), supplyEvent.MaxTotalSupply)

	openBoxEvent, err := g.ParseOpenBoxTimeEvent(*makeLog(t, ABI(), testContract, EventOpenBoxTime, big.NewInt(1671153161)))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1671153161), openBoxEvent.OpenBoxTime)

	pauseEvent, err := g.ParsePauseEvent(*makeLog(t, ABI(), testContract, EventPause, true))
	require.NoError(t, err)
	require.True(t, pauseEvent.Paused)

	executorEvent, err := g.ParseExecutorAddressEvent(*makeLog(t, ABI(), testContract, EventExecutorAddress, bob))
	require.NoError(t, err)
	require.Equal(t, bob, executorEvent.Executor)
}

func TestParseIndexedEvents(t *testing.T) {
	g := New(testContract, newFakeBackend(ABI()))

	transferLog := makeLog(t, ABI(), testContract, EventTransfer, alice, bob, big.NewInt(2))
	require.Len(t, transferLog.Topics, 4)
	transfer, err := g.ParseTransferEvent(*transferLog)
	require.NoError(t, err)
	require.Equal(t, alice, transfer.From)
	require.Equal(t, bob, transfer.To)
	require.Equal(t, big.NewInt(2), transfer.TokenID)

	approval, err := g.ParseApprovalEvent(*makeLog(t, ABI(), testContract, EventApproval, alice, bob, big.NewInt(1)))
	require.NoError(t, err)
	require.Equal(t, alice, approval.Owner)
	require.Equal(t, bob, approval.Approved)
	require.Equal(t, big.NewInt(1), approval.TokenID)

	approvalForAll, err := g.ParseApprovalForAllEvent(*makeLog(t, ABI(), testContract, EventApprovalForAll, alice, alice, true))
	require.NoError(t, err)
	require.Equal(t, alice, approvalForAll.Owner)
	require.Equal(t, alice, approvalForAll.Operator)
	require.True(t, approvalForAll.Approved)
}

func TestParseEventMismatch(t *testing.T) {
	g := New(testContract, newFakeBackend(ABI()))
	pauseLog := makeLog(t, ABI(), testContract, EventPause, true)

	_, err := g.ParseExecutorAddressEvent(*pauseLog)
	require.ErrorIs(t, err, ErrEventMismatch)

	foreign := *pauseLog
	foreign.Address = bob
	_, err = g.ParsePauseEvent(foreign)
	require.ErrorIs(t, err, ErrEventMismatch)

	_, err = g.ParsePauseEvent(types.Log{})
	require.ErrorIs(t, err, ErrEventMismatch)

	truncated := *makeLog(t, ABI(), testContract, EventTransfer, alice, bob, big.NewInt(2))
	truncated.Topics = truncated.Topics[:2]
	_, err = g.ParseTransferEvent(truncated)
	require.ErrorIs(t, err, ErrEventMismatch)
}

func TestFindEvents(t *testing.T) {
	g := New(testContract, newFakeBackend(ABI()))
	receipt := &types.Receipt{Logs: []*types.Log{
		makeLog(t, ABI(), testContract, EventTransfer, common.Address{}, alice, big.NewInt(0)),
		makeLog(t, ABI(), testContract, EventTransfer, common.Address{}, alice, big.NewInt(1)),
		makeLog(t, ABI(), testContract, EventPause, false),
	}}
	transfers := FindEvents(receipt, g.ParseTransferEvent)
	require.Len(t, transfers, 2)
	require.Equal(t, big.NewInt(1), transfers[1].TokenID)
	_, err := FindEvent(nil, g.ParseTransferEvent)
	require.Error(t, err)
}

func TestDecodeRevertMessages(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
		custom string
		revert bool
	}{
		{
			name:   "hardhat reason string",
			err:    errors.New("VM Exception while processing transaction: reverted with reason string 'caller is not Executor'"),
			reason: ReasonNotExecutor,
			revert: true,
		},
		{
			name:   "hardhat custom error",
			err:    errors.New("VM Exception while processing transaction: reverted with custom error 'URIQueryForNonexistentToken()'"),
			custom: ErrorURIQueryForNonexistentToken,
			revert: true,
		},
		{
			name:   "anvil reason",
			err:    errors.New("failed to estimate gas needed: execution reverted: revert: stage is not open"),
			reason: ReasonStageNotOpen,
			revert: true,
		},
		{
			name:   "geth reason",
			err:    errors.New("execution reverted: nft is not open"),
			reason: ReasonNFTNotOpen,
			revert: true,
		},
		{
			name:   "anvil custom error selector",
			err:    errors.New("execution reverted: custom error 0x" + common.Bytes2Hex(customSelector(ABI(), ErrorMintZeroQuantity))),
			custom: ErrorMintZeroQuantity,
			revert: true,
		},
		{
			name: "not a revert",
			err:  errors.New("connection refused"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revertErr, ok := DecodeRevert(ABI(), tt.err)
			require.Equal(t, tt.revert, ok)
			if !ok {
				return
			}
			require.Equal(t, tt.reason, revertErr.Reason)
			require.Equal(t, tt.custom, revertErr.Name)
			require.ErrorIs(t, revertErr, tt.err)
		})
	}
}

func TestCoerceArgs(t *testing.T) {
	method := ABI().Methods["executorMint"]
	args, err := coerceArgs(method.Inputs, []interface{}{alice.Hex(), 3})
	require.NoError(t, err)
	require.Equal(t, []interface{}{alice, big.NewInt(3)}, args)

	_, err = coerceArgs(method.Inputs, []interface{}{"not an address", 3})
	require.ErrorIs(t, err, ErrBadArgument)
	_, err = coerceArgs(method.Inputs, []interface{}{alice})
	require.ErrorIs(t, err, ErrBadArgument)
	_, err = coerceArgs(method.Inputs, []interface{}{alice, "3"})
	require.ErrorIs(t, err, ErrUnexpectedType)
}
