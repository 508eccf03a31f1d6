// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
	"github.com/glanger-labs/glanger-cli/pkg/prompts"
)

type PrivateKeyFlags struct {
	PrivateKey string
	// index into the network accounts, negative to prompt
	AccountIndex int
}

const (
	privateKeyFlagName   = "private-key"
	accountIndexFlagName = "account"
)

func (pkf *PrivateKeyFlags) AddToCmd(
	cmd *cobra.Command,
	goal string,
) {
	cobrautils.AddFlagGroup(cmd, "Signer Flags", func(set *pflag.FlagSet) {
		set.StringVar(
			&pkf.PrivateKey,
			privateKeyFlagName,
			"",
			fmt.Sprintf("private key to use %s", goal),
		)
		set.IntVar(
			&pkf.AccountIndex,
			accountIndexFlagName,
			0,
			fmt.Sprintf("index of the network account to use %s, negative to choose interactively", goal),
		)
	})
}

// GetSigner returns the signer selected by the flags among [signers]: the
// explicit private key first, then the account index, then a prompt
func (pkf *PrivateKeyFlags) GetSigner(
	prompter prompts.Prompter,
	signers []accounts.Signer,
	goal string,
) (accounts.Signer, error) {
	if pkf.PrivateKey != "" {
		return accounts.FromPrivateKey(pkf.PrivateKey)
	}
	if pkf.AccountIndex >= 0 && len(signers) > 0 {
		if pkf.AccountIndex >= len(signers) {
			return accounts.Signer{}, fmt.Errorf(
				"%w: account %d requested, network has %d",
				accounts.ErrNoSigners,
				pkf.AccountIndex,
				len(signers),
			)
		}
		return signers[pkf.AccountIndex], nil
	}
	return prompts.PromptSigner(prompter, signers, goal)
}

// ChainSigner selects the signer for [chain]. An explicit private key is used
// without looking at the network accounts, so networks without configured
// keys still work with --private-key.
func (pkf *PrivateKeyFlags) ChainSigner(
	prompter prompts.Prompter,
	chain Chain,
	goal string,
) (accounts.Signer, error) {
	if pkf.PrivateKey != "" {
		return accounts.FromPrivateKey(pkf.PrivateKey)
	}
	signers, err := chain.Signers()
	if err != nil && !(errors.Is(err, accounts.ErrNoSigners) && pkf.AccountIndex < 0) {
		return accounts.Signer{}, err
	}
	return pkf.GetSigner(prompter, signers, goal)
}
