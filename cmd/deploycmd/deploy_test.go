// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glanger-labs/glanger-cli/internal/testutils"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/deploy"
)

const executor = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

func TestParamsFromFlags(t *testing.T) {
	cmd := NewCmd(testutils.SetupTestInTempDir(t, map[string]string{
		constants.NFTMetadataURLEnvVar: "ipfs://env/",
		constants.ExecuteAddressEnvVar: executor,
	}))

	require.NoError(t, cmd.ParseFlags([]string{}))
	require.Equal(t, deploy.Params{
		BaseTokenURI:          "ipfs://env/",
		OpenBoxBeforeTokenURI: "hidden.json",
		MaxTotalSupply:        7777,
		OpenBoxTime:           1669445844,
		Executor:              executor,
	}, paramsFromFlags(cmd, deployFlags))

	other := "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	require.NoError(t, cmd.ParseFlags([]string{
		"--base-uri", "",
		"--placeholder-uri", "box.json",
		"--max-supply", "100",
		"--open-box-time", "1671153161",
		"--executor", other,
	}))
	require.Equal(t, deploy.Params{
		BaseTokenURI:          "",
		OpenBoxBeforeTokenURI: "box.json",
		MaxTotalSupply:        100,
		OpenBoxTime:           1671153161,
		Executor:              other,
	}, paramsFromFlags(cmd, deployFlags))
}
