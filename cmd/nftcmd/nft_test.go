// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package nftcmd

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/glanger-labs/glanger-cli/internal/testutils"
	"github.com/glanger-labs/glanger-cli/pkg/glanger"
)

func TestFormatTime(t *testing.T) {
	require := require.New(t)
	require.Equal("-", formatTime(nil))
	require.Equal("-", formatTime(big.NewInt(0)))
	require.Equal("2022-11-26T06:57:24Z (1669445844)", formatTime(big.NewInt(1669445844)))
	huge, _ := new(big.Int).SetString("100000000000000000000", 10)
	require.Equal("100000000000000000000", formatTime(huge))
}

func TestParseStageType(t *testing.T) {
	require := require.New(t)
	stageType, err := parseStageType("2")
	require.NoError(err)
	require.Equal(int64(2), stageType.Int64())
	_, err = parseStageType("two")
	require.ErrorIs(err, errInvalidStage)
	_, err = parseStageType("-1")
	require.ErrorIs(err, errInvalidStage)
}

func TestStageFromFlags(t *testing.T) {
	require := require.New(t)
	stage, err := stageFromFlags(big.NewInt(1), stageFlags{
		startTime:   1669445844,
		endTime:     1669532244,
		maxQuantity: 2,
		price:       "0.05",
	})
	require.NoError(err)
	require.Equal(uint64(1), stage.StageType)
	require.Equal(uint64(2), stage.MaxQuantity)
	require.Equal("50000000000000000", stage.Price.String())

	_, err = stageFromFlags(big.NewInt(1), stageFlags{price: "a lot"})
	require.ErrorIs(err, errInvalidStage)
	_, err = stageFromFlags(big.NewInt(1), stageFlags{startTime: 10, endTime: 5, price: "0"})
	require.ErrorIs(err, errInvalidStage)
}

func testSummary() summary {
	return summary{
		Address:     common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Name:        "GlangerNFT",
		Symbol:      "GNFT",
		TotalSupply: big.NewInt(3),
		Owner:       common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Executor:    common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		Balance:     big.NewInt(150_000_000_000_000_000),
		CurrentStage: glanger.CurrentStage{
			StageType: big.NewInt(1),
			IsOpen:    true,
			Price:     big.NewInt(50_000_000_000_000_000),
		},
		Stages: []glanger.Stage{
			{
				StageType:      big.NewInt(1),
				StartTime:      big.NewInt(1669445844),
				EndTime:        big.NewInt(1669532244),
				MaxQuantity:    big.NewInt(2),
				MintedQuantity: big.NewInt(3),
				Price:          big.NewInt(50_000_000_000_000_000),
			},
			{
				StageType:   big.NewInt(2),
				StartTime:   big.NewInt(0),
				EndTime:     big.NewInt(0),
				MaxQuantity: big.NewInt(0),
				Price:       big.NewInt(0),
			},
		},
	}
}

func TestSummaryTable(t *testing.T) {
	require := testutils.SetupTest(t)
	out := summaryTable(testSummary()).Render()
	require.Contains(out, "GLANGERNFT")
	require.Contains(out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.Contains(out, "GNFT")
	require.Contains(out, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.Contains(out, "0.15 ETH")
	require.Contains(out, "1 (open, 0.05 ETH)")

	sum := testSummary()
	sum.CurrentStage = glanger.CurrentStage{StageType: big.NewInt(0)}
	require.Contains(summaryTable(sum).Render(), "none")
}

func TestStagesTable(t *testing.T) {
	require := testutils.SetupTest(t)
	out := stagesTable(testSummary()).Render()
	require.Contains(out, "STAGES")
	require.Contains(out, "2022-11-26T06:57:24Z (1669445844)")
	require.Contains(out, "0.05")
	require.Contains(out, "-")
}
