// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

func PrintStdErr(err error) {
	exitErr, typeOk := err.(*exec.ExitError)
	if typeOk {
		fmt.Println(string(exitErr.Stderr))
	}
}

// ArtifactPath returns the compiled contract artifact the suite deploys
func ArtifactPath() (string, error) {
	path := os.Getenv(constants.ArtifactPathEnvVar)
	if path == "" {
		return "", fmt.Errorf("%s must point to the compiled %s artifact", constants.ArtifactPathEnvVar, constants.ContractName)
	}
	return path, nil
}

// RPCURL returns the development chain endpoint
func RPCURL() string {
	if url := os.Getenv(constants.LocalRPCURLEnvVar); url != "" {
		return url
	}
	return constants.DefaultLocalRPCURL
}
