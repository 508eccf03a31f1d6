// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagGroupAnnotation records on each flag the group that defined it
const flagGroupAnnotation = "glanger_flag_group"

// AddFlagGroup lets [defineFlags] declare a set of related flags, adds them to
// [cmd] and tags each of them with [groupName]
func AddFlagGroup(cmd *cobra.Command, groupName string, defineFlags func(set *pflag.FlagSet)) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(groupName, pflag.ContinueOnError)
	defineFlags(flagSet)
	flagSet.VisitAll(func(f *pflag.Flag) {
		if f.Annotations == nil {
			f.Annotations = map[string][]string{}
		}
		f.Annotations[flagGroupAnnotation] = []string{groupName}
	})
	cmd.Flags().AddFlagSet(flagSet)
	return flagSet
}

// FlagGroup returns the group [flagName] was declared in, if any
func FlagGroup(cmd *cobra.Command, flagName string) string {
	f := cmd.Flags().Lookup(flagName)
	if f == nil || len(f.Annotations[flagGroupAnnotation]) == 0 {
		return ""
	}
	return f.Annotations[flagGroupAnnotation][0]
}
