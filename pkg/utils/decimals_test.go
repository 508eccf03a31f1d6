// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		expected string
		errors   bool
	}{
		{name: "tenth of ether", amount: "0.1", decimals: 18, expected: "100000000000000000"},
		{name: "hundredth of ether", amount: "0.01", decimals: 18, expected: "10000000000000000"},
		{name: "integer", amount: "3", decimals: 18, expected: "3000000000000000000"},
		{name: "leading dot", amount: ".3", decimals: 18, expected: "300000000000000000"},
		{name: "trailing dot", amount: "2.", decimals: 2, expected: "200"},
		{name: "zero decimals", amount: "42", decimals: 0, expected: "42"},
		{name: "gwei", amount: "21", decimals: 9, expected: "21000000000"},
		{name: "too many decimals", amount: "0.001", decimals: 2, errors: true},
		{name: "empty", amount: "", decimals: 18, errors: true},
		{name: "only dot", amount: ".", decimals: 18, errors: true},
		{name: "negative", amount: "-1", decimals: 18, errors: true},
		{name: "garbage", amount: "1a", decimals: 18, errors: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseUnits(tt.amount, tt.decimals)
			if tt.errors {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, v.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	require.Equal(t, "0.1", FormatEther(MustParseEther("0.1")))
	require.Equal(t, "0.3", FormatEther(MustParseEther("0.3")))
	require.Equal(t, "12", FormatEther(MustParseEther("12")))
	require.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
	require.Equal(t, "-1.5", FormatUnits(big.NewInt(-15), 1))
	require.Equal(t, "0", FormatEther(nil))
	require.Equal(t, "7", FormatUnits(big.NewInt(7), 0))
}
