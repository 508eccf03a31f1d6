// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gasreport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

var settings = config.GasReporter{Enabled: true, Currency: "USD", GasPriceGwei: 21}

func TestRecord(t *testing.T) {
	r := New("GlangerNFT", settings)
	r.Record("mint", 100)
	r.Record("mint", 300)
	r.Record("setStage", 50)
	r.Record(DeployMethod, 2_000_000)

	methods := r.Methods()
	require.Equal(t, []MethodStats{
		{Method: "mint", Calls: 2, Min: 100, Max: 300, Total: 400},
		{Method: "setStage", Calls: 1, Min: 50, Max: 50, Total: 50},
	}, methods)
	require.Equal(t, uint64(200), methods[0].Avg())

	deployment, ok := r.Deployment()
	require.True(t, ok)
	require.Equal(t, uint64(2_000_000), deployment.Max)
}

func TestDisabled(t *testing.T) {
	r := New("GlangerNFT", config.GasReporter{Currency: "USD", GasPriceGwei: 21})
	r.Record("mint", 100)
	require.Empty(t, r.Methods())
	_, ok := r.Deployment()
	require.False(t, ok)
	var nilReporter *Reporter
	require.False(t, nilReporter.Enabled())
	nilReporter.Record("mint", 1)
}

func TestCost(t *testing.T) {
	r := New("GlangerNFT", settings)
	// 21 gwei * 1_000_000 gas = 0.021 ETH
	require.Equal(t, "21000000000000000", r.Cost(1_000_000).String())
}

func TestTable(t *testing.T) {
	r := New("GlangerNFT", settings)
	r.Record("setPause", 28_000)
	r.Record(DeployMethod, 2_500_000)
	rendered := r.Table().Render()
	require.Contains(t, rendered, "GLANGERNFT GAS USAGE")
	require.Contains(t, rendered, "setPause")
	require.Contains(t, rendered, "28_000")
	require.Contains(t, rendered, "GlangerNFT (deployment)")
	require.Contains(t, rendered, "2_500_000")
	require.Contains(t, rendered, "0.0525")
	require.Contains(t, rendered, "USD")
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	ux.Logger = nil
	ux.NewUserLog(zap.NewNop(), &out)
	t.Cleanup(func() { ux.Logger = nil })

	r := New("GlangerNFT", settings)
	r.Print()
	require.Empty(t, out.String())
	r.Record("mint", 90_000)
	r.Print()
	require.Contains(t, out.String(), "mint")
}
