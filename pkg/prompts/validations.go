// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	errInvalidAddress    = errors.New("invalid address")
	errInvalidPrivateKey = errors.New("invalid private key")
)

func validateAddress(input string) error {
	if !common.IsHexAddress(input) {
		return errInvalidAddress
	}
	return nil
}

func validatePrivateKey(input string) error {
	if _, err := crypto.HexToECDSA(strings.TrimPrefix(input, "0x")); err != nil {
		return errInvalidPrivateKey
	}
	return nil
}
