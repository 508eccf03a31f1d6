// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package glanger is a typed binding over the GlangerNFT contract: deployment,
// transactions, queries, event parsing and revert decoding.
package glanger

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:embed abi.json
var embeddedABI string

const deployMethod = "deploy"

var (
	ErrNoBytecode     = errors.New("no bytecode to deploy")
	ErrTxReverted     = errors.New("transaction reverted")
	ErrUnknownMethod  = errors.New("method not found in contract abi")
	ErrBadArgument    = errors.New("invalid argument")
	ErrUnexpectedType = errors.New("unexpected output type")
)

// Backend is what the binding needs from a chain connection
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// GasRecorder receives the gas used by every mined transaction of the binding
type GasRecorder interface {
	Record(method string, gasUsed uint64)
}

// ConstructorParams are the deployment arguments, in constructor order
type ConstructorParams struct {
	BaseTokenURI          string
	OpenBoxBeforeTokenURI string
	MaxTotalSupply        *big.Int
	OpenBoxTime           *big.Int
	Executor              common.Address
}

func (p ConstructorParams) args() []interface{} {
	return []interface{}{p.BaseTokenURI, p.OpenBoxBeforeTokenURI, p.MaxTotalSupply, p.OpenBoxTime, p.Executor}
}

// EncodeConstructorArgs returns the abi encoding of [params] as appended to the
// creation bytecode, the form explorers expect for verification
func EncodeConstructorArgs(contractABI abi.ABI, params ConstructorParams) ([]byte, error) {
	args, err := coerceArgs(contractABI.Constructor.Inputs, params.args())
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	return contractABI.Pack("", args...)
}

type Glanger struct {
	address  common.Address
	abi      abi.ABI
	backend  Backend
	contract *bind.BoundContract
	recorder GasRecorder

	lock    sync.Mutex
	methods map[common.Hash]string
}

type options struct {
	abi      *abi.ABI
	recorder GasRecorder
}

type Option func(*options)

// WithABI overrides the embedded abi, usually with the one of a compiled artifact
func WithABI(contractABI abi.ABI) Option {
	return func(o *options) {
		o.abi = &contractABI
	}
}

// WithGasRecorder reports the gas used by transactions waited through the binding
func WithGasRecorder(recorder GasRecorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

// ABI returns the embedded contract abi
func ABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(embeddedABI))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded abi: %s", err))
	}
	return parsed
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.abi == nil {
		embedded := ABI()
		o.abi = &embedded
	}
	return o
}

// New binds a deployed contract at [address]
func New(address common.Address, backend Backend, opts ...Option) *Glanger {
	o := newOptions(opts)
	return &Glanger{
		address:  address,
		abi:      *o.abi,
		backend:  backend,
		contract: bind.NewBoundContract(address, *o.abi, backend, backend, backend),
		recorder: o.recorder,
		methods:  map[common.Hash]string{},
	}
}

// Deploy sends the deployment transaction of [bytecode] with constructor [params].
// The returned binding is usable once the transaction is mined.
func Deploy(
	txOpts *bind.TransactOpts,
	backend Backend,
	bytecode []byte,
	params ConstructorParams,
	opts ...Option,
) (common.Address, *types.Transaction, *Glanger, error) {
	if len(bytecode) == 0 {
		return common.Address{}, nil, nil, ErrNoBytecode
	}
	o := newOptions(opts)
	args, err := coerceArgs(o.abi.Constructor.Inputs, params.args())
	if err != nil {
		return common.Address{}, nil, nil, fmt.Errorf("constructor: %w", err)
	}
	address, tx, _, err := bind.DeployContract(txOpts, *o.abi, bytecode, backend, args...)
	if err != nil {
		return common.Address{}, nil, nil, decodeRevert(*o.abi, err)
	}
	g := New(address, backend, opts...)
	g.track(tx, deployMethod)
	return address, tx, g, nil
}

// Address of the bound contract
func (g *Glanger) Address() common.Address {
	return g.address
}

// ContractABI returns the abi the binding works with
func (g *Glanger) ContractABI() abi.ABI {
	return g.abi
}

func (g *Glanger) track(tx *types.Transaction, method string) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.methods[tx.Hash()] = method
}

func (g *Glanger) methodOf(hash common.Hash) string {
	g.lock.Lock()
	defer g.lock.Unlock()
	method := g.methods[hash]
	delete(g.methods, hash)
	return method
}

// transact packs [method], checks with a call that it would not revert, then
// signs and sends it. Reverts found by the check are returned as *RevertError.
func (g *Glanger) transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	m, ok := g.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	args, err := coerceArgs(m.Inputs, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	input, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failure packing %s: %w", method, err)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	msg := ethereum.CallMsg{From: opts.From, To: &g.address, Value: opts.Value, Data: input}
	if _, err := g.backend.CallContract(ctx, msg, nil); err != nil {
		return nil, decodeRevert(g.abi, err)
	}
	tx, err := g.contract.RawTransact(opts, input)
	if err != nil {
		return nil, decodeRevert(g.abi, err)
	}
	g.track(tx, method)
	return tx, nil
}

// call invokes a view [method] and returns its outputs as decoded by the abi package
func (g *Glanger) call(opts *bind.CallOpts, method string, params ...interface{}) ([]interface{}, error) {
	m, ok := g.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	args, err := coerceArgs(m.Inputs, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if opts == nil {
		opts = &bind.CallOpts{}
	}
	var out []interface{}
	if err := g.contract.Call(opts, &out, method, args...); err != nil {
		return nil, decodeRevert(g.abi, err)
	}
	if len(out) == 1 && len(m.Outputs) == 1 && m.Outputs[0].Type.T == abi.TupleTy {
		out = flattenTuple(out[0])
	}
	return out, nil
}

// WaitMined waits for [tx] and returns its receipt, failing with ErrTxReverted
// if it did not succeed. The gas used is reported to the gas recorder.
func (g *Glanger) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, g.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failure waiting for tx %s: %w", tx.Hash(), err)
	}
	method := g.methodOf(tx.Hash())
	if g.recorder != nil && method != "" {
		g.recorder.Record(method, receipt.GasUsed)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s (txHash=%s)", ErrTxReverted, method, tx.Hash())
	}
	return receipt, nil
}
