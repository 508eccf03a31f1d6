// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networkcmd

import (
	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/cobrautils"
)

var app *application.Glanger

func NewCmd(injectedApp *application.Glanger) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect the configured networks",
		Long: `The network command suite lists the networks the other commands can target,
as resolved from the environment and the optional yaml config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cobrautils.CommandSuiteUsage(cmd, args)
		},
		Args: cobrautils.ExactArgs(0),
	}
	// network list
	cmd.AddCommand(newListCmd())
	return cmd
}
