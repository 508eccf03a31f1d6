// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package glanger

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/glanger-labs/glanger-cli/pkg/evm"
)

// revert reasons of the contract
const (
	ReasonNotExecutor  = "caller is not Executor"
	ReasonStageNotOpen = "stage is not open"
	ReasonNFTNotOpen   = "nft is not open"
)

// custom errors of the contract
const (
	ErrorURIQueryForNonexistentToken       = "URIQueryForNonexistentToken"
	ErrorApprovalCallerNotOwnerNorApproved = "ApprovalCallerNotOwnerNorApproved"
	ErrorApprovalQueryForNonexistentToken  = "ApprovalQueryForNonexistentToken"
	ErrorBalanceQueryForZeroAddress        = "BalanceQueryForZeroAddress"
	ErrorMintToZeroAddress                 = "MintToZeroAddress"
	ErrorMintZeroQuantity                  = "MintZeroQuantity"
	ErrorOwnerQueryForNonexistentToken     = "OwnerQueryForNonexistentToken"
	ErrorTransferCallerNotOwnerNorApproved = "TransferCallerNotOwnerNorApproved"
	ErrorTransferFromIncorrectOwner        = "TransferFromIncorrectOwner"
	ErrorTransferToNonERC721Receiver       = "TransferToNonERC721ReceiverImplementer"
	ErrorTransferToZeroAddress             = "TransferToZeroAddress"
)

var (
	errorSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	panicSelector = crypto.Keccak256([]byte("Panic(uint256)"))[:4]

	// hardhat network
	reasonStringRe = regexp.MustCompile(`reverted with reason string '((?:[^']|'')*)'`)
	customErrorRe  = regexp.MustCompile(`reverted with custom error '([A-Za-z_][A-Za-z0-9_]*)\(`)
	// geth and anvil
	executionRevertedRe = regexp.MustCompile(`execution reverted(?::\s*(.*))?`)
	customSelectorRe    = regexp.MustCompile(`custom error (0x[0-9a-fA-F]{8})`)
)

// RevertError is a contract revert, carrying either the Error(string) reason
// or the name of the custom error
type RevertError struct {
	Reason   string
	Name     string
	Args     []interface{}
	Selector string
	Err      error
}

func (e *RevertError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("execution reverted with custom error %s%v", e.Name, formatArgs(e.Args))
	case e.Reason != "":
		return fmt.Sprintf("execution reverted: %s", e.Reason)
	case e.Selector != "":
		return fmt.Sprintf("execution reverted with unknown error %s", e.Selector)
	default:
		return "execution reverted"
	}
}

func (e *RevertError) Unwrap() error {
	return e.Err
}

// Matches checks either the reason or the custom error name
func (e *RevertError) Matches(reasonOrName string) bool {
	return reasonOrName != "" && (e.Reason == reasonOrName || e.Name == reasonOrName)
}

func formatArgs(args []interface{}) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// DecodeRevert interprets [err] as a revert of the bound contract
func (g *Glanger) DecodeRevert(err error) (*RevertError, bool) {
	return DecodeRevert(g.abi, err)
}

// DecodeRevert interprets [err] as a revert of a contract with abi [contractABI].
// It understands the revert data attached to json-rpc errors and the messages
// of hardhat, anvil and geth when no data is attached.
func DecodeRevert(contractABI abi.ABI, err error) (*RevertError, bool) {
	if err == nil {
		return nil, false
	}
	var revertErr *RevertError
	if errors.As(err, &revertErr) {
		return revertErr, true
	}
	if data, ok := evm.RevertData(err); ok && len(data) >= 4 {
		revertErr = decodeRevertData(contractABI, data)
		revertErr.Err = err
		return revertErr, true
	}
	msg := err.Error()
	if m := reasonStringRe.FindStringSubmatch(msg); m != nil {
		return &RevertError{Reason: strings.ReplaceAll(m[1], "''", "'"), Err: err}, true
	}
	if m := customErrorRe.FindStringSubmatch(msg); m != nil {
		return &RevertError{Name: m[1], Err: err}, true
	}
	if m := customSelectorRe.FindStringSubmatch(msg); m != nil {
		data, decodeErr := hex.DecodeString(strings.TrimPrefix(m[1], "0x"))
		if decodeErr == nil {
			revertErr = decodeRevertData(contractABI, data)
			revertErr.Err = err
			return revertErr, true
		}
	}
	if m := executionRevertedRe.FindStringSubmatch(msg); m != nil {
		reason := strings.TrimSpace(m[1])
		reason = strings.TrimPrefix(reason, "revert: ")
		return &RevertError{Reason: reason, Err: err}, true
	}
	return nil, false
}

func decodeRevertData(contractABI abi.ABI, data []byte) *RevertError {
	selector := data[:4]
	selectorHex := "0x" + hex.EncodeToString(selector)
	if bytes.Equal(selector, errorSelector) || bytes.Equal(selector, panicSelector) {
		reason, err := abi.UnpackRevert(data)
		if err == nil {
			return &RevertError{Reason: reason, Selector: selectorHex}
		}
	}
	for name, abiErr := range contractABI.Errors {
		if !bytes.Equal(abiErr.ID[:4], selector) {
			continue
		}
		args, err := abiErr.Inputs.Unpack(data[4:])
		if err != nil {
			args = nil
		}
		return &RevertError{Name: name, Args: args, Selector: selectorHex}
	}
	return &RevertError{Selector: selectorHex}
}

// decodeRevert returns the *RevertError for [err] when it is a revert, or [err] otherwise
func decodeRevert(contractABI abi.ABI, err error) error {
	if revertErr, ok := DecodeRevert(contractABI, err); ok {
		if revertErr.Name == "" && revertErr.Reason == "" && revertErr.Selector != "" {
			return fmt.Errorf("%w: %w", revertErr, evm.ErrUnknownErrorSelector)
		}
		return revertErr
	}
	return err
}

// IsRevert indicates whether [err] is a revert with the given reason or custom error name
func IsRevert(err error, reasonOrName string) bool {
	var revertErr *RevertError
	if !errors.As(err, &revertErr) {
		return false
	}
	return revertErr.Matches(reasonOrName)
}
