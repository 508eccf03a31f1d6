// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

const (
	customOption = "Custom"
	Cancel       = "Cancel"
)

var ErrCanceled = errors.New("canceled by the user")

// PromptSigner picks the account that signs for [goal]. A single configured
// account is used as is. With none, the user is asked for a private key.
func PromptSigner(prompter Prompter, signers []accounts.Signer, goal string) (accounts.Signer, error) {
	switch len(signers) {
	case 0:
		ux.Logger.PrintToUser("A private key is needed to %s.", goal)
		key, err := prompter.CapturePrivateKey("Private key")
		if err != nil {
			return accounts.Signer{}, err
		}
		return accounts.FromPrivateKey(key)
	case 1:
		return signers[0], nil
	}
	options := utils.Map(signers, func(signer accounts.Signer) string { return signer.Address.Hex() })
	choice, err := prompter.CaptureList(fmt.Sprintf("Which account should %s?", goal), options)
	if err != nil {
		return accounts.Signer{}, err
	}
	for _, signer := range signers {
		if signer.Address.Hex() == choice {
			return signer, nil
		}
	}
	return accounts.Signer{}, fmt.Errorf("unexpected account %q", choice)
}

// PromptAddress asks for the address that will [goal], offering [suggested] first
func PromptAddress(prompter Prompter, goal string, suggested []common.Address) (common.Address, error) {
	options := append(utils.Map(suggested, common.Address.Hex), customOption, Cancel)
	choice, err := prompter.CaptureList(fmt.Sprintf("Which address should %s?", goal), options)
	if err != nil {
		return common.Address{}, err
	}
	switch choice {
	case Cancel:
		return common.Address{}, ErrCanceled
	case customOption:
		return prompter.CaptureAddress("Address")
	}
	return common.HexToAddress(choice), nil
}
