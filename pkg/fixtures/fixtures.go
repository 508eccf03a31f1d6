// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fixtures holds the stage windows and deployment parameters shared by
// the acceptance suite and the nft commands.
package fixtures

import (
	"math/big"
	"os"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

type Stage struct {
	StageType   uint64
	StartTime   int64
	EndTime     int64
	MaxQuantity uint64
	// wei
	Price *big.Int
}

type Configs struct {
	Stage1           Stage
	Stage2           Stage
	OpenBoxTime      int64
	NewOpenBoxTime   int64
	TotalSupply      uint64
	BaseTokenURI     string
	OpenBoxBeforeURI string
	MintTime         int64
	BuyPrice         *big.Int
}

// Default returns the fixture with an empty base token uri
func Default() Configs {
	return FromEnv(func(string) (string, bool) { return "", false })
}

// FromEnv returns the fixture taking the base token uri from NFT_METADATA_URL
// as resolved by [lookup]. A nil lookup reads the process environment.
func FromEnv(lookup func(string) (string, bool)) Configs {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	baseTokenURI, _ := lookup(constants.NFTMetadataURLEnvVar)
	return Configs{
		Stage1: Stage{
			StageType:   1,
			StartTime:   1668591290, // 2022-11-16 09:34:50 UTC
			EndTime:     1670051868, // 2022-12-03 07:17:48 UTC
			MaxQuantity: 3,
			Price:       utils.MustParseEther("0.1"),
		},
		Stage2: Stage{
			StageType:   2,
			StartTime:   1668647561,
			EndTime:     1670051868,
			MaxQuantity: 3,
			Price:       utils.MustParseEther("0.01"),
		},
		OpenBoxTime:      constants.DefaultOpenBoxTime,
		NewOpenBoxTime:   1671153161,
		TotalSupply:      constants.DefaultMaxTotalSupply,
		BaseTokenURI:     baseTokenURI,
		OpenBoxBeforeURI: constants.DefaultOpenBoxBeforeTokenURI,
		MintTime:         1668850490,
		BuyPrice:         utils.MustParseEther("0.1"),
	}
}

// ParseUnits converts a decimal amount into base units of [decimals] digits
func ParseUnits(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 || decimals > 255 {
		return nil, utils.ErrInvalidAmount
	}
	return utils.ParseUnits(amount, uint8(decimals))
}

// ParseEther converts an ether amount into wei
func ParseEther(amount string) (*big.Int, error) {
	return utils.ParseEther(amount)
}

// Rebase shifts every timestamp of the fixture so that MintTime equals [now],
// keeping all the offsets between them
func (c Configs) Rebase(now int64) Configs {
	delta := now - c.MintTime
	rebased := c
	rebased.Stage1 = c.Stage1.shift(delta)
	rebased.Stage2 = c.Stage2.shift(delta)
	rebased.OpenBoxTime += delta
	rebased.NewOpenBoxTime += delta
	rebased.MintTime = now
	rebased.BuyPrice = new(big.Int).Set(c.BuyPrice)
	return rebased
}

func (s Stage) shift(delta int64) Stage {
	s.StartTime += delta
	s.EndTime += delta
	s.Price = new(big.Int).Set(s.Price)
	return s
}

// IsOpen indicates whether [at] falls inside the stage window
func (s Stage) IsOpen(at int64) bool {
	return at >= s.StartTime && at <= s.EndTime
}

// Cost returns the price of [quantity] tokens at this stage
func (s Stage) Cost(quantity uint64) *big.Int {
	return new(big.Int).Mul(s.Price, new(big.Int).SetUint64(quantity))
}
