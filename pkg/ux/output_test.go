// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrintToUserMirrorsToLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	out := &bytes.Buffer{}
	ul := &UserLog{log: zap.New(core), Writer: out}

	ul.PrintToUser("Token address: %s", "0x01")
	ul.Info("only in %s", "log")

	require.Equal(t, "Token address: 0x01\n", out.String())
	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "Token address: 0x01", entries[0].Message)
	require.Equal(t, "only in log", entries[1].Message)
}

func TestConvertToStringWithThousandSeparator(t *testing.T) {
	require.Equal(t, "7_777", ConvertToStringWithThousandSeparator(7777))
	require.Equal(t, "21_000", ConvertToStringWithThousandSeparator(21000))
	require.Equal(t, "3", ConvertToStringWithThousandSeparator(3))
}
