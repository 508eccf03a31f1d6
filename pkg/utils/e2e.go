// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"os"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
)

// IsE2E checks if the environment variable RUN_E2E is set
func IsE2E() bool {
	return os.Getenv(constants.E2EEnvVar) != ""
}
