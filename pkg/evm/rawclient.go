// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

var (
	ErrUnknownErrorSelector = errors.New("unknown error selector")
	ErrSnapshotNotReverted  = errors.New("snapshot could not be reverted")
)

// also used at mocks
var rpcDialContext = rpc.DialContext

// wraps over rpc.Client for the development chain controls not available in ethclient
// (hardhat and anvil share them):
// - evm_increaseTime / evm_setNextBlockTimestamp / evm_mine
// - evm_snapshot / evm_revert
// features:
// - finds out url scheme in case it is missing, to connect to ws/wss/http/https
// - repeats reads to try to recover from failures, generating its own context for each call
// - logs rpc url in case of failure
type RawClient struct {
	RPCClient *rpc.Client
	URL       string
}

// connects a raw evm rpc client to the given [rpcURL]
// supports [repeatsOnFailure] failures
func GetRawClient(rpcURL string) (RawClient, error) {
	client := RawClient{
		URL: rpcURL,
	}
	hasScheme, err := HasScheme(rpcURL)
	if err != nil {
		return RawClient{}, err
	}
	client.RPCClient, err = utils.RetryWithContextGen(
		utils.GetAPILargeContext,
		func(ctx context.Context) (*rpc.Client, error) {
			if hasScheme {
				return rpcDialContext(ctx, rpcURL)
			}
			_, scheme, err := GetClientWithoutScheme(rpcURL)
			if err != nil {
				return nil, err
			}
			return rpcDialContext(ctx, scheme+rpcURL)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure connecting to rpc client on %s: %w", rpcURL, err)
	}
	return client, err
}

// closes underlying rpc connection
func (client RawClient) Close() {
	if client.RPCClient != nil {
		client.RPCClient.Close()
	}
}

// call sends [method] once. Chain controls change node state, so a lost
// response must not lead to a second application.
func (client RawClient) call(result interface{}, method string, args ...interface{}) error {
	ctx, cancel := utils.GetAPIContext()
	defer cancel()
	if err := client.RPCClient.CallContext(ctx, result, method, args...); err != nil {
		return fmt.Errorf("failure calling %s on %s: %w", method, client.URL, err)
	}
	return nil
}

// read is call for side effect free methods, retried up to [repeatsOnFailure] times
func (client RawClient) read(result interface{}, method string, args ...interface{}) error {
	_, err := utils.RetryWithContextGen(
		utils.GetAPIContext,
		func(ctx context.Context) (any, error) {
			return nil, client.RPCClient.CallContext(ctx, result, method, args...)
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		return fmt.Errorf("failure calling %s on %s: %w", method, client.URL, err)
	}
	return nil
}

// moves the chain clock forward by [seconds], effective from the next mined block
func (client RawClient) IncreaseTime(seconds uint64) error {
	// hardhat answers with a number and anvil with a hex quantity
	var result json.RawMessage
	return client.call(&result, "evm_increaseTime", seconds)
}

// sets the timestamp of the next mined block
func (client RawClient) SetNextBlockTimestamp(timestamp uint64) error {
	var result json.RawMessage
	return client.call(&result, "evm_setNextBlockTimestamp", timestamp)
}

// mines a block
func (client RawClient) Mine() error {
	var result json.RawMessage
	return client.call(&result, "evm_mine")
}

// takes a snapshot of the chain state and returns its id
func (client RawClient) Snapshot() (string, error) {
	var id string
	if err := client.call(&id, "evm_snapshot"); err != nil {
		return "", err
	}
	return id, nil
}

// reverts the chain state to snapshot [id]. snapshots can only be reverted once
func (client RawClient) Revert(id string) error {
	var reverted bool
	if err := client.call(&reverted, "evm_revert", id); err != nil {
		return err
	}
	if !reverted {
		return fmt.Errorf("%w: %s", ErrSnapshotNotReverted, id)
	}
	return nil
}

// returns the timestamp of the latest block
// supports [repeatsOnFailure] failures
func (client RawClient) LatestBlockTimestamp() (uint64, error) {
	var header struct {
		Timestamp hexutil.Uint64 `json:"timestamp"`
	}
	if err := client.read(&header, "eth_getBlockByNumber", "latest", false); err != nil {
		return 0, err
	}
	return uint64(header.Timestamp), nil
}

// moves the chain clock forward by [seconds] and mines a block so that
// subsequent calls observe the new time
func (client RawClient) TimeTravel(seconds uint64) error {
	if err := client.IncreaseTime(seconds); err != nil {
		return err
	}
	return client.Mine()
}
