// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/application"
	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/prompts"
	"github.com/glanger-labs/glanger-cli/pkg/ux"
)

// variables the configuration reads from the process environment
var configEnvVars = []string{
	constants.DotenvConfigPathEnvVar,
	constants.AlchemyAPIKeyEnvVar,
	constants.GoerliPrivateKeyEnvVar,
	constants.EtherscanAPIKeyEnvVar,
	constants.ReportGasEnvVar,
	constants.NFTMetadataURLEnvVar,
	constants.ExecuteAddressEnvVar,
	constants.LocalRPCURLEnvVar,
	constants.LocalMnemonicEnvVar,
	constants.ArtifactPathEnvVar,
}

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(zap.NewNop(), io.Discard)
	return require.New(t)
}

// SetupTestInTempDir returns an app rooted in a temp dir, configured from the
// builtin networks only, with [env] overriding the environment values
func SetupTestInTempDir(t *testing.T, env map[string]string) *application.Glanger {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
	conf, err := config.Load(config.LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
	for k, v := range env {
		conf.Env[k] = v
	}
	app := application.New()
	app.Setup(t.TempDir(), zap.NewNop(), conf, prompts.NewPrompter())
	return app
}
