// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/glanger-labs/glanger-cli/pkg/evm"
)

const (
	EventStage                 = "StageEvent"
	EventOpenBoxBeforeTokenURI = "setOpenBoxBeforeTokenURIEvent"
	EventMaxTotalSupply        = "MaxTotalSupplyEvent"
	EventOpenBoxTime           = "OpenBoxTimeEvent"
	EventNFTMint               = "NFTMintEvent"
	EventPause                 = "PauseEvent"
	EventExecutorAddress       = "ExecutorAddressEvent"
	EventApproval              = "Approval"
	EventApprovalForAll        = "ApprovalForAll"
	EventTransfer              = "Transfer"
)

var (
	ErrUnknownEvent      = errors.New("event not found in contract abi")
	ErrEventMismatch     = errors.New("log is not the expected event")
	ErrUnsupportedTopics = errors.New("unsupported indexed argument type")
)

type StageEvent struct {
	StageType      *big.Int
	StartTime      *big.Int
	EndTime        *big.Int
	MaxQuantity    *big.Int
	MintedQuantity *big.Int
	Price          *big.Int
	Raw            types.Log
}

type OpenBoxBeforeTokenURIEvent struct {
	URI string
	Raw types.Log
}

type MaxTotalSupplyEvent struct {
	MaxTotalSupply *big.Int
	Raw            types.Log
}

type OpenBoxTimeEvent struct {
	OpenBoxTime *big.Int
	Raw         types.Log
}

type NFTMintEvent struct {
	StageType   *big.Int
	LastTokenID *big.Int
	To          common.Address
	Quantity    *big.Int
	Price       *big.Int
	Raw         types.Log
}

type PauseEvent struct {
	Paused bool
	Raw    types.Log
}

type ExecutorAddressEvent struct {
	Executor common.Address
	Raw      types.Log
}

type ApprovalEvent struct {
	Owner    common.Address
	Approved common.Address
	TokenID  *big.Int
	Raw      types.Log
}

type ApprovalForAllEvent struct {
	Owner    common.Address
	Operator common.Address
	Approved bool
	Raw      types.Log
}

type TransferEvent struct {
	From    common.Address
	To      common.Address
	TokenID *big.Int
	Raw     types.Log
}

// unpackEvent returns the arguments of [log] as event [name], in declaration
// order, whether they are indexed or not
func (g *Glanger) unpackEvent(name string, log types.Log) ([]interface{}, error) {
	event, ok := g.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return nil, fmt.Errorf("%w: %s", ErrEventMismatch, name)
	}
	if log.Address != (common.Address{}) && log.Address != g.address {
		return nil, fmt.Errorf("%w: %s emitted by %s", ErrEventMismatch, name, log.Address)
	}
	nonIndexed, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failure unpacking %s data: %w", name, err)
	}
	values := make([]interface{}, 0, len(event.Inputs))
	topic, data := 1, 0
	for _, input := range event.Inputs {
		if !input.Indexed {
			values = append(values, nonIndexed[data])
			data++
			continue
		}
		if topic >= len(log.Topics) {
			return nil, fmt.Errorf("%w: %s is missing topic %d", ErrEventMismatch, name, topic)
		}
		v, err := decodeTopic(input.Type, log.Topics[topic])
		if err != nil {
			return nil, fmt.Errorf("%s argument %s: %w", name, input.Name, err)
		}
		values = append(values, v)
		topic++
	}
	return values, nil
}

func decodeTopic(t abi.Type, topic common.Hash) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		return common.BytesToAddress(topic[12:]), nil
	case abi.UintTy:
		return new(big.Int).SetBytes(topic[:]), nil
	case abi.IntTy:
		n := new(big.Int).SetBytes(topic[:])
		if topic[0]&0x80 != 0 {
			n.Sub(n, new(big.Int).Lsh(big.NewInt(1), 256))
		}
		return n, nil
	case abi.BoolTy:
		return topic[common.HashLength-1] != 0, nil
	case abi.FixedBytesTy:
		return topic, nil
	default:
		// dynamic types are hashed into the topic and cannot be recovered
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTopics, t)
	}
}

// eventArgs unpacks [name] and checks it has [n] arguments
func (g *Glanger) eventArgs(name string, log types.Log, n int) ([]interface{}, error) {
	values, err := g.unpackEvent(name, log)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("%s: %w: %d arguments", name, ErrUnexpectedType, len(values))
	}
	return values, nil
}

func (g *Glanger) ParseStageEvent(log types.Log) (*StageEvent, error) {
	values, err := g.eventArgs(EventStage, log, 6)
	if err != nil {
		return nil, err
	}
	n, err := bigs(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventStage, err)
	}
	return &StageEvent{
		StageType:      n[0],
		StartTime:      n[1],
		EndTime:        n[2],
		MaxQuantity:    n[3],
		MintedQuantity: n[4],
		Price:          n[5],
		Raw:            log,
	}, nil
}

func (g *Glanger) ParseOpenBoxBeforeTokenURIEvent(log types.Log) (*OpenBoxBeforeTokenURIEvent, error) {
	values, err := g.eventArgs(EventOpenBoxBeforeTokenURI, log, 1)
	if err != nil {
		return nil, err
	}
	uri, err := toString(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventOpenBoxBeforeTokenURI, err)
	}
	return &OpenBoxBeforeTokenURIEvent{URI: uri, Raw: log}, nil
}

func (g *Glanger) ParseMaxTotalSupplyEvent(log types.Log) (*MaxTotalSupplyEvent, error) {
	values, err := g.eventArgs(EventMaxTotalSupply, log, 1)
	if err != nil {
		return nil, err
	}
	n, err := toBig(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventMaxTotalSupply, err)
	}
	return &MaxTotalSupplyEvent{MaxTotalSupply: n, Raw: log}, nil
}

func (g *Glanger) ParseOpenBoxTimeEvent(log types.Log) (*OpenBoxTimeEvent, error) {
	values, err := g.eventArgs(EventOpenBoxTime, log, 1)
	if err != nil {
		return nil, err
	}
	n, err := toBig(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventOpenBoxTime, err)
	}
	return &OpenBoxTimeEvent{OpenBoxTime: n, Raw: log}, nil
}

func (g *Glanger) ParseNFTMintEvent(log types.Log) (*NFTMintEvent, error) {
	values, err := g.eventArgs(EventNFTMint, log, 5)
	if err != nil {
		return nil, err
	}
	to, err := toAddress(values[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventNFTMint, err)
	}
	n, err := bigs([]interface{}{values[0], values[1], values[3], values[4]})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventNFTMint, err)
	}
	return &NFTMintEvent{
		StageType:   n[0],
		LastTokenID: n[1],
		To:          to,
		Quantity:    n[2],
		Price:       n[3],
		Raw:         log,
	}, nil
}

func (g *Glanger) ParsePauseEvent(log types.Log) (*PauseEvent, error) {
	values, err := g.eventArgs(EventPause, log, 1)
	if err != nil {
		return nil, err
	}
	paused, err := toBool(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventPause, err)
	}
	return &PauseEvent{Paused: paused, Raw: log}, nil
}

func (g *Glanger) ParseExecutorAddressEvent(log types.Log) (*ExecutorAddressEvent, error) {
	values, err := g.eventArgs(EventExecutorAddress, log, 1)
	if err != nil {
		return nil, err
	}
	executor, err := toAddress(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventExecutorAddress, err)
	}
	return &ExecutorAddressEvent{Executor: executor, Raw: log}, nil
}

func (g *Glanger) ParseApprovalEvent(log types.Log) (*ApprovalEvent, error) {
	values, err := g.eventArgs(EventApproval, log, 3)
	if err != nil {
		return nil, err
	}
	owner, err := toAddress(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventApproval, err)
	}
	approved, err := toAddress(values[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventApproval, err)
	}
	tokenID, err := toBig(values[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventApproval, err)
	}
	return &ApprovalEvent{Owner: owner, Approved: approved, TokenID: tokenID, Raw: log}, nil
}

func (g *Glanger) ParseApprovalForAllEvent(log types.Log) (*ApprovalForAllEvent, error) {
	values, err := g.eventArgs(EventApprovalForAll, log, 3)
	if err != nil {
		return nil, err
	}
	owner, err := toAddress(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventApprovalForAll, err)
	}
	operator, err := toAddress(values[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventApprovalForAll, err)
	}
	approved, err := toBool(values[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventApprovalForAll, err)
	}
	return &ApprovalForAllEvent{Owner: owner, Operator: operator, Approved: approved, Raw: log}, nil
}

func (g *Glanger) ParseTransferEvent(log types.Log) (*TransferEvent, error) {
	values, err := g.eventArgs(EventTransfer, log, 3)
	if err != nil {
		return nil, err
	}
	from, err := toAddress(values[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventTransfer, err)
	}
	to, err := toAddress(values[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventTransfer, err)
	}
	tokenID, err := toBig(values[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EventTransfer, err)
	}
	return &TransferEvent{From: from, To: to, TokenID: tokenID, Raw: log}, nil
}

// FindEvent returns the first log of [receipt] that [parser] accepts
func FindEvent[T any](receipt *types.Receipt, parser func(types.Log) (T, error)) (T, error) {
	if receipt == nil {
		var zero T
		return zero, fmt.Errorf("nil receipt")
	}
	return evm.GetEventFromLogs(receipt.Logs, parser)
}

// FindEvents returns every log of [receipt] that [parser] accepts
func FindEvents[T any](receipt *types.Receipt, parser func(types.Log) (T, error)) []T {
	if receipt == nil {
		return nil
	}
	return evm.GetEventsFromLogs(receipt.Logs, parser)
}

// HasEvent indicates whether [receipt] carries a log of event [name]
func (g *Glanger) HasEvent(receipt *types.Receipt, name string) bool {
	event, ok := g.abi.Events[name]
	if !ok || receipt == nil {
		return false
	}
	for _, log := range receipt.Logs {
		if len(log.Topics) > 0 && log.Topics[0] == event.ID && log.Address == g.address {
			return true
		}
	}
	return false
}
