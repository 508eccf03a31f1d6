// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

type dataError struct {
	msg  string
	data interface{}
}

func (e dataError) Error() string          { return e.msg }
func (e dataError) ErrorData() interface{} { return e.data }

func TestGetEventFromLogs(t *testing.T) {
	logs := []*types.Log{
		{Data: []byte{1}},
		{Data: []byte{2}},
	}
	parser := func(log types.Log) (byte, error) {
		if log.Data[0] != 2 {
			return 0, errors.New("not it")
		}
		return log.Data[0], nil
	}
	event, err := GetEventFromLogs(logs, parser)
	require.NoError(t, err)
	require.Equal(t, byte(2), event)
	require.Equal(t, []byte{2}, GetEventsFromLogs(logs, parser))

	_, err = GetEventFromLogs(logs[:1], parser)
	require.ErrorContains(t, err, "log 0 -> not it")
}

func TestTransactionError(t *testing.T) {
	base := errors.New("reverted")
	err := TransactionError(nil, base, "failure calling %s", "mint")
	require.ErrorIs(t, err, base)
	require.Equal(t, "failure calling mint: reverted (tx failed to be submitted)", err.Error())

	tx := types.NewTx(&types.LegacyTx{Nonce: 3, GasPrice: big.NewInt(1)})
	err = TransactionError(tx, base, "failure calling mint")
	require.True(t, strings.HasSuffix(err.Error(), fmt.Sprintf("(txHash=%s)", tx.Hash())))
}

func TestRevertData(t *testing.T) {
	data, ok := RevertData(fmt.Errorf("wrapped: %w", dataError{msg: "execution reverted", data: "0x08c379a0"}))
	require.True(t, ok)
	require.Equal(t, []byte{0x08, 0xc3, 0x79, 0xa0}, data)

	data, ok = RevertData(dataError{data: map[string]interface{}{"data": "0x0102"}})
	require.True(t, ok)
	require.Equal(t, []byte{1, 2}, data)

	_, ok = RevertData(dataError{data: "not hex"})
	require.False(t, ok)
	_, ok = RevertData(errors.New("plain"))
	require.False(t, ok)
}
