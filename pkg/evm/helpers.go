// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// Returns the first log in 'logs' that is successfully parsed by 'parser'
func GetEventFromLogs[T any](logs []*types.Log, parser func(log types.Log) (T, error)) (T, error) {
	cumErrMsg := ""
	for i, log := range logs {
		event, err := parser(*log)
		if err == nil {
			return event, nil
		}
		if cumErrMsg != "" {
			cumErrMsg += "; "
		}
		cumErrMsg += fmt.Sprintf("log %d -> %s", i, err.Error())
	}
	return *new(T), fmt.Errorf("failed to find %T event in receipt logs: [%s]", *new(T), cumErrMsg)
}

// Returns every log in 'logs' that is successfully parsed by 'parser'
func GetEventsFromLogs[T any](logs []*types.Log, parser func(log types.Log) (T, error)) []T {
	events := []T{}
	for _, log := range logs {
		if event, err := parser(*log); err == nil {
			events = append(events, event)
		}
	}
	return events
}

// transform a tx operation error into an error that contains:
// - the [err] itself
// - the [tx] hash (or information on the tx not being submitted)
// - another descriptive [msg], together with formated [args]
func TransactionError(tx *types.Transaction, err error, msg string, args ...interface{}) error {
	msgSuffix := ": %w"
	if tx != nil {
		msgSuffix += fmt.Sprintf(" (txHash=%s)", tx.Hash().String())
	} else {
		msgSuffix += " (tx failed to be submitted)"
	}
	args = append(args, err)
	return fmt.Errorf(msg+msgSuffix, args...)
}

// extracts the revert payload carried by a json-rpc error, if any
func RevertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	switch data := dataErr.ErrorData().(type) {
	case string:
		bs, err := hexutil.Decode(data)
		if err != nil {
			return nil, false
		}
		return bs, true
	case []byte:
		return data, true
	case map[string]interface{}:
		// some nodes nest the payload one level down
		if inner, ok := data["data"].(string); ok {
			bs, err := hexutil.Decode(inner)
			if err != nil {
				return nil, false
			}
			return bs, true
		}
	}
	return nil, false
}
