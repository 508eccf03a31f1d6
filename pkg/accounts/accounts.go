// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package accounts turns the signer material of a network (raw private keys or
// a BIP-39 mnemonic) into transaction signers.
package accounts

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidPath     = errors.New("invalid derivation path")
	ErrNoSigners       = errors.New("no signers available")
)

type Signer struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// FromPrivateKey builds a signer from a hex encoded key, with or without 0x prefix
func FromPrivateKey(hexKey string) (Signer, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return Signer{}, fmt.Errorf("invalid private key: %w", err)
	}
	return Signer{
		Address:    crypto.PubkeyToAddress(pk.PublicKey),
		PrivateKey: pk,
	}, nil
}

// FromMnemonic derives [count] signers from [mnemonic] on [basePath]/i
func FromMnemonic(mnemonic string, basePath string, count int) ([]Signer, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}
	indexes, err := ParsePath(basePath)
	if err != nil {
		return nil, err
	}
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failure creating master key: %w", err)
	}
	for _, index := range indexes {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("failure deriving %s: %w", basePath, err)
		}
	}
	signers := make([]Signer, 0, count)
	for i := 0; i < count; i++ {
		child, err := key.NewChildKey(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("failure deriving %s/%d: %w", basePath, i, err)
		}
		pk, err := crypto.ToECDSA(child.Key)
		if err != nil {
			return nil, fmt.Errorf("failure converting %s/%d: %w", basePath, i, err)
		}
		signers = append(signers, Signer{
			Address:    crypto.PubkeyToAddress(pk.PublicKey),
			PrivateKey: pk,
		})
	}
	return signers, nil
}

// ParsePath converts a path like m/44'/60'/0'/0 into child indexes
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w %q: must start with m", ErrInvalidPath, path)
	}
	indexes := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'")
		n, err := strconv.ParseUint(strings.TrimSuffix(part, "'"), 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPath, path, err)
		}
		index := uint32(n)
		if hardened {
			index += bip32.FirstHardenedChild
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// FromNetwork returns the signers of [network]. Raw keys take precedence over
// the mnemonic, as they do on the development chain configs.
func FromNetwork(network config.Network) ([]Signer, error) {
	if len(network.Accounts) > 0 {
		signers := make([]Signer, 0, len(network.Accounts))
		for i, key := range network.Accounts {
			signer, err := FromPrivateKey(key)
			if err != nil {
				return nil, fmt.Errorf("network %s account %d: %w", network.Name, i, err)
			}
			signers = append(signers, signer)
		}
		return signers, nil
	}
	if network.Mnemonic != "" {
		return FromMnemonic(network.Mnemonic, constants.LocalAccountsHDPath, constants.DefaultLocalAccounts)
	}
	return nil, fmt.Errorf("%w on network %s", ErrNoSigners, network.Name)
}

// TransactOpts returns keyed transaction options for [chainID]
func (s Signer) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.PrivateKey, chainID)
}

// PrivateKeyHex returns the key hex encoded, without 0x prefix
func (s Signer) PrivateKeyHex() string {
	return common.Bytes2Hex(crypto.FromECDSA(s.PrivateKey))
}
