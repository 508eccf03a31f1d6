// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSpinWhile(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	original := Logger
	t.Cleanup(func() { Logger = original })
	Logger = &UserLog{log: zap.New(core), Writer: io.Discard}

	status, err := SpinWhile("Verifying", func() (string, error) {
		return "verified", nil
	})
	require.NoError(t, err)
	require.Equal(t, "verified", status)

	errPending := errors.New("pending in queue")
	_, err = SpinWhile("Verifying", func() (string, error) {
		return "", errPending
	})
	require.ErrorIs(t, err, errPending)

	messages := []string{}
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	require.Equal(t, []string{
		"Verifying [Spinner Start]",
		"Verifying [Spinner Complete]",
		"Verifying [Spinner Start]",
		"Verifying err:pending in queue [Spinner Err]",
	}, messages)
}
