// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompts

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// replaces the text runner with one that validates and returns [answers] in order
func mockPrompt(t *testing.T, answers ...string) {
	t.Helper()
	original := promptUIRunner
	t.Cleanup(func() { promptUIRunner = original })
	promptUIRunner = func(prompt promptui.Prompt) (string, error) {
		require.NotEmpty(t, answers, "unexpected prompt %v", prompt.Label)
		answer := answers[0]
		answers = answers[1:]
		if prompt.Validate != nil {
			if err := prompt.Validate(answer); err != nil {
				return "", err
			}
		}
		return answer, nil
	}
}

// replaces the select runner with one that returns [choices] in order
func mockSelect(t *testing.T, choices ...string) {
	t.Helper()
	original := promptUISelectRunner
	t.Cleanup(func() { promptUISelectRunner = original })
	promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
		require.NotEmpty(t, choices, "unexpected select %v", prompt.Label)
		choice := choices[0]
		choices = choices[1:]
		items, ok := prompt.Items.([]string)
		require.True(t, ok)
		for i, item := range items {
			if item == choice {
				return i, choice, nil
			}
		}
		return 0, "", errors.New("choice not offered")
	}
}

func TestCaptureAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected common.Address
		err      string
	}{
		{
			name:     "checksummed",
			input:    "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			expected: common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		},
		{
			name:     "lowercase without prefix",
			input:    "70997970c51812dc3a010c7d01b50e0d17dc79c8",
			expected: common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		},
		{name: "too short", input: "0x7099", err: "invalid address"},
		{name: "empty", input: "", err: "invalid address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPrompt(t, tt.input)
			address, err := NewPrompter().CaptureAddress("Executor")
			if tt.err != "" {
				require.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, address)
		})
	}
}

func TestCapturePrivateKey(t *testing.T) {
	mockPrompt(t, "0x"+devKey)
	key, err := NewPrompter().CapturePrivateKey("Private key")
	require.NoError(t, err)
	require.Equal(t, "0x"+devKey, key)

	mockPrompt(t, "0xdeadbeef")
	_, err = NewPrompter().CapturePrivateKey("Private key")
	require.ErrorContains(t, err, "invalid private key")
}

func TestPromptSigner(t *testing.T) {
	signers, err := accounts.FromMnemonic(constants.DefaultLocalMnemonic, constants.LocalAccountsHDPath, 3)
	require.NoError(t, err)

	signer, err := PromptSigner(NewPrompter(), signers[:1], "deploy the contract")
	require.NoError(t, err)
	require.Equal(t, signers[0].Address, signer.Address)

	mockSelect(t, signers[2].Address.Hex())
	signer, err = PromptSigner(NewPrompter(), signers, "deploy the contract")
	require.NoError(t, err)
	require.Equal(t, signers[2].Address, signer.Address)

	mockPrompt(t, devKey)
	signer, err = PromptSigner(NewPrompter(), nil, "deploy the contract")
	require.NoError(t, err)
	require.Equal(t, signers[0].Address, signer.Address)
}

func TestPromptAddress(t *testing.T) {
	suggested := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	custom := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	mockSelect(t, suggested.Hex(), customOption, Cancel)
	address, err := PromptAddress(NewPrompter(), "act as executor", []common.Address{suggested})
	require.NoError(t, err)
	require.Equal(t, suggested, address)

	mockPrompt(t, custom.Hex())
	address, err = PromptAddress(NewPrompter(), "act as executor", []common.Address{suggested})
	require.NoError(t, err)
	require.Equal(t, custom, address)

	_, err = PromptAddress(NewPrompter(), "act as executor", []common.Address{suggested})
	require.ErrorIs(t, err, ErrCanceled)
}
