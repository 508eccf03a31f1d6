// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package fixtures

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, uint64(1), c.Stage1.StageType)
	require.Equal(t, int64(1668591290), c.Stage1.StartTime)
	require.Equal(t, int64(1670051868), c.Stage1.EndTime)
	require.Equal(t, uint64(3), c.Stage1.MaxQuantity)
	require.Equal(t, "100000000000000000", c.Stage1.Price.String())
	require.Equal(t, uint64(2), c.Stage2.StageType)
	require.Equal(t, int64(1668647561), c.Stage2.StartTime)
	require.Equal(t, "10000000000000000", c.Stage2.Price.String())
	require.Equal(t, int64(1669445844), c.OpenBoxTime)
	require.Equal(t, int64(1671153161), c.NewOpenBoxTime)
	require.Equal(t, uint64(7777), c.TotalSupply)
	require.Empty(t, c.BaseTokenURI)
	require.Equal(t, "hidden.json", c.OpenBoxBeforeURI)
	require.Equal(t, int64(1668850490), c.MintTime)
	require.Equal(t, utils.MustParseEther("0.1"), c.BuyPrice)
	require.True(t, c.Stage1.IsOpen(c.MintTime))
	require.True(t, c.Stage2.IsOpen(c.MintTime))
}

func TestFromEnv(t *testing.T) {
	c := FromEnv(func(key string) (string, bool) {
		if key == "NFT_METADATA_URL" {
			return "ipfs://meta/", true
		}
		return "", false
	})
	require.Equal(t, "ipfs://meta/", c.BaseTokenURI)

	t.Setenv("NFT_METADATA_URL", "https://example.com/")
	require.Equal(t, "https://example.com/", FromEnv(nil).BaseTokenURI)
}

func TestParseUnits(t *testing.T) {
	v, err := ParseUnits("0.3", 18)
	require.NoError(t, err)
	require.Equal(t, "300000000000000000", v.String())
	v, err = ParseUnits("12.5", 6)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(12500000), v)
	_, err = ParseUnits("1", -1)
	require.ErrorIs(t, err, utils.ErrInvalidAmount)
	_, err = ParseEther("abc")
	require.ErrorIs(t, err, utils.ErrInvalidAmount)
}

func TestRebase(t *testing.T) {
	c := Default()
	const now = int64(1_800_000_000)
	r := c.Rebase(now)
	delta := now - c.MintTime
	require.Equal(t, now, r.MintTime)
	require.Equal(t, c.Stage1.StartTime+delta, r.Stage1.StartTime)
	require.Equal(t, c.Stage1.EndTime+delta, r.Stage1.EndTime)
	require.Equal(t, c.Stage2.StartTime+delta, r.Stage2.StartTime)
	require.Equal(t, c.OpenBoxTime+delta, r.OpenBoxTime)
	require.Equal(t, c.NewOpenBoxTime+delta, r.NewOpenBoxTime)
	require.True(t, r.Stage1.IsOpen(now))
	require.Equal(t, c.Stage1.Price, r.Stage1.Price)

	// the original fixture is untouched
	r.Stage1.Price.SetInt64(1)
	require.Equal(t, "100000000000000000", c.Stage1.Price.String())
	require.Equal(t, int64(1668591290), c.Stage1.StartTime)
}

func TestStageCost(t *testing.T) {
	c := Default()
	require.Equal(t, utils.MustParseEther("0.3"), c.Stage1.Cost(3))
	require.False(t, c.Stage1.IsOpen(c.Stage1.EndTime+1))
}
