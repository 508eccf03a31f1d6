// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

const (
	// repository root, relative to this package
	RootDir = "../.."
	// signers derived from the development mnemonic
	OwnerIndex    = 0
	ExecutorIndex = 1
	BuyerIndex    = 2
	OtherIndex    = 3
)
