// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glanger-labs/glanger-cli/pkg/glanger"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

type UsageError struct {
	cmd *cobra.Command
	err error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("Usage error: %s", e.err)
}

func (e UsageError) Unwrap() error {
	return e.err
}

func NewUsageError(cmd *cobra.Command, err error) UsageError {
	return UsageError{
		cmd: cmd,
		err: err,
	}
}

// withUsage prints the command help when [check] rejects the arguments
func withUsage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := check(cmd, args)
		if err != nil {
			_ = cmd.Help()
			err = NewUsageError(cmd, err)
		}
		return err
	}
}

func ExactArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.ExactArgs(n))
}

func MaximumNArgs(n int) cobra.PositionalArgs {
	return withUsage(cobra.MaximumNArgs(n))
}

// ErrorMessage renders [err] for the user. Contract reverts are reduced to
// their reason or custom error name, timeouts get a hint.
func ErrorMessage(err error) string {
	var revertErr *glanger.RevertError
	switch {
	case errors.As(err, &revertErr):
		switch {
		case revertErr.Reason != "":
			return fmt.Sprintf("Error: transaction reverted: %s", revertErr.Reason)
		case revertErr.Name != "":
			return fmt.Sprintf("Error: transaction reverted with %s", revertErr.Name)
		}
		return fmt.Sprintf("Error: %s", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Error: %s (is the rpc endpoint reachable?)", err)
	}
	return fmt.Sprintf("Error: %s", err)
}

func HandleErrors(err error) {
	if err != nil {
		usageErr, ok := err.(UsageError)
		if ok {
			usageErr.cmd.Println(usageErr.cmd.UsageString())
			usageErr.cmd.Println()
			usageErr.cmd.Println(usageErr)
		} else {
			ux.Logger.PrintToUser("%s", ErrorMessage(err))
		}
		os.Exit(1)
	}
}

func CommandSuiteUsage(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return NewUsageError(
			cmd,
			fmt.Errorf("invalid subcommand %q", strings.Join(args, " ")),
		)
	}
	err := cmd.Help()
	if err != nil {
		fmt.Println(err)
	}
	return nil
}

func ConfigureRootCmd(cmd *cobra.Command) {
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return NewUsageError(cmd, err)
	})
}
