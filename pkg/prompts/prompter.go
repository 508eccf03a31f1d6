// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/manifoldco/promptui"
)

// Prompter asks the user for the values a command could not get from its flags
type Prompter interface {
	CaptureAddress(promptStr string) (common.Address, error)
	CapturePrivateKey(promptStr string) (string, error)
	CaptureList(promptStr string, options []string) (string, error)
}

type realPrompter struct{}

// replaced during testing
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

// replaced during testing
var promptUISelectRunner = func(prompt promptui.Select) (int, string, error) {
	return prompt.Run()
}

func NewPrompter() Prompter {
	return &realPrompter{}
}

func (*realPrompter) CaptureAddress(promptStr string) (common.Address, error) {
	addressStr, err := promptUIRunner(promptui.Prompt{
		Label:    promptStr,
		Validate: validateAddress,
	})
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(addressStr), nil
}

// CapturePrivateKey reads a hex private key without echoing it
func (*realPrompter) CapturePrivateKey(promptStr string) (string, error) {
	return promptUIRunner(promptui.Prompt{
		Label:    promptStr,
		Validate: validatePrivateKey,
		Mask:     '*',
	})
}

func (*realPrompter) CaptureList(promptStr string, options []string) (string, error) {
	_, choice, err := promptUISelectRunner(promptui.Select{
		Label: promptStr,
		Items: options,
	})
	return choice, err
}
