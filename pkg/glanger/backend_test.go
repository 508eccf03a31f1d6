// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

var testChainID = big.NewInt(31337)

type callHandler func(msg ethereum.CallMsg) ([]byte, error)

// fakeBackend answers calls from per method handlers and mines every sent
// transaction immediately, with the receipt built by receiptFor
type fakeBackend struct {
	abi        abi.ABI
	lock       sync.Mutex
	handlers   map[string]callHandler
	sent       []*types.Transaction
	receipts   map[common.Hash]*types.Receipt
	nonces     map[common.Address]uint64
	receiptFor func(tx *types.Transaction) *types.Receipt
}

func newFakeBackend(contractABI abi.ABI) *fakeBackend {
	return &fakeBackend{
		abi:      contractABI,
		handlers: map[string]callHandler{},
		receipts: map[common.Hash]*types.Receipt{},
		nonces:   map[common.Address]uint64{},
	}
}

func (b *fakeBackend) handle(method string, handler callHandler) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.handlers[method] = handler
}

// returns [values] packed as the outputs of [method]
func (b *fakeBackend) returns(t *testing.T, method string, values ...interface{}) {
	t.Helper()
	out, err := b.abi.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	b.handle(method, func(ethereum.CallMsg) ([]byte, error) { return out, nil })
}

func (b *fakeBackend) reverts(method string, err error) {
	b.handle(method, func(ethereum.CallMsg) ([]byte, error) { return nil, err })
}

func (b *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (b *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if len(msg.Data) < 4 {
		return nil, errors.New("no selector")
	}
	method, err := b.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	b.lock.Lock()
	handler, ok := b.handlers[method.Name]
	b.lock.Unlock()
	if !ok {
		return nil, nil
	}
	return handler(msg)
}

func (b *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), Time: 1668850490}, nil
}

func (b *fakeBackend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return b.CodeAt(ctx, account, nil)
}

func (b *fakeBackend) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.nonces[account], nil
}

func (b *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}

func (b *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	from, err := types.Sender(types.LatestSignerForChainID(testChainID), tx)
	if err != nil {
		return err
	}
	receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful, GasUsed: 50_000}
	if b.receiptFor != nil {
		receipt = b.receiptFor(tx)
	}
	receipt.TxHash = tx.Hash()
	b.lock.Lock()
	defer b.lock.Unlock()
	b.nonces[from]++
	b.sent = append(b.sent, tx)
	b.receipts[tx.Hash()] = receipt
	return nil
}

func (b *fakeBackend) FilterLogs(context.Context, ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

func (b *fakeBackend) SubscribeFilterLogs(context.Context, ethereum.FilterQuery, chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("subscriptions not supported")
}

func (b *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	receipt, ok := b.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (b *fakeBackend) lastSent(t *testing.T) *types.Transaction {
	t.Helper()
	b.lock.Lock()
	defer b.lock.Unlock()
	require.NotEmpty(t, b.sent)
	return b.sent[len(b.sent)-1]
}

type dataError struct {
	msg  string
	data string
}

func (e dataError) Error() string          { return e.msg }
func (e dataError) ErrorData() interface{} { return e.data }

func reasonRevert(t *testing.T, reason string) error {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return dataError{msg: "execution reverted: " + reason, data: hexutil.Encode(append(append([]byte{}, errorSelector...), packed...))}
}

// customSelector returns the 4 byte selector of the custom error [name]
func customSelector(contractABI abi.ABI, name string) []byte {
	id := contractABI.Errors[name].ID
	return append([]byte{}, id[:4]...)
}

func customRevert(contractABI abi.ABI, name string) error {
	return dataError{msg: "execution reverted", data: hexutil.Encode(customSelector(contractABI, name))}
}

// builds a log of event [name] emitted by [address]
func makeLog(t *testing.T, contractABI abi.ABI, address common.Address, name string, values ...interface{}) *types.Log {
	t.Helper()
	event := contractABI.Events[name]
	require.Len(t, values, len(event.Inputs))
	topics := []common.Hash{event.ID}
	data := []interface{}{}
	for i, input := range event.Inputs {
		if !input.Indexed {
			data = append(data, values[i])
			continue
		}
		indexed, err := abi.MakeTopics([]interface{}{values[i]})
		require.NoError(t, err)
		topics = append(topics, indexed[0][0])
	}
	packed, err := event.Inputs.NonIndexed().Pack(data...)
	require.NoError(t, err)
	return &types.Log{Address: address, Topics: topics, Data: packed}
}

type signers struct {
	owner, executor, buyer accounts.Signer
}

func testSigners(t *testing.T) signers {
	t.Helper()
	all, err := accounts.FromMnemonic(constants.DefaultLocalMnemonic, constants.LocalAccountsHDPath, 3)
	require.NoError(t, err)
	return signers{owner: all[0], executor: all[1], buyer: all[2]}
}

func transactOpts(t *testing.T, signer accounts.Signer) *bind.TransactOpts {
	t.Helper()
	opts, err := signer.TransactOpts(testChainID)
	require.NoError(t, err)
	return opts
}

type gasRecorder struct {
	gas map[string][]uint64
}

func (r *gasRecorder) Record(method string, gasUsed uint64) {
	if r.gas == nil {
		r.gas = map[string][]uint64{}
	}
	r.gas[method] = append(r.gas[method], gasUsed)
}
