// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/glanger-labs/glanger-cli/internal/testutils"
	"github.com/glanger-labs/glanger-cli/pkg/accounts"
	"github.com/glanger-labs/glanger-cli/pkg/artifact"
	"github.com/glanger-labs/glanger-cli/pkg/config"
	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/models"
	"github.com/glanger-labs/glanger-cli/pkg/prompts"
)

var deployedAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func TestArtifactPath(t *testing.T) {
	app := testutils.SetupTestInTempDir(t, nil)
	require.Equal(t, artifact.PathFor(".", constants.ContractName), ArtifactPath(app, ArtifactFlags{}))
	require.Equal(t, "/tmp/a.json", ArtifactPath(app, ArtifactFlags{Path: "/tmp/a.json"}))

	app = testutils.SetupTestInTempDir(t, map[string]string{constants.ArtifactPathEnvVar: "/env/GlangerNFT.json"})
	require.Equal(t, "/env/GlangerNFT.json", ArtifactPath(app, ArtifactFlags{}))
	require.Equal(t, "/tmp/a.json", ArtifactPath(app, ArtifactFlags{Path: "/tmp/a.json"}))
}

func TestOptionsFallsBackToEmbeddedABI(t *testing.T) {
	app := testutils.SetupTestInTempDir(t, map[string]string{constants.ArtifactPathEnvVar: filepath.Join(t.TempDir(), "missing.json")})
	opts, err := Options(app, ArtifactFlags{})
	require.NoError(t, err)
	require.Empty(t, opts)

	_, err = Options(app, ArtifactFlags{Path: filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorIs(t, err, artifact.ErrNotFound)

	malformed := filepath.Join(t.TempDir(), "GlangerNFT.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{"), constants.WriteReadReadPerms))
	_, err = Options(app, ArtifactFlags{Path: malformed})
	require.ErrorIs(t, err, artifact.ErrMalformed)
}

func TestResolveAddress(t *testing.T) {
	app := testutils.SetupTestInTempDir(t, nil)
	address, err := ResolveAddress(app, constants.LocalNetwork, []string{deployedAddress.Hex()})
	require.NoError(t, err)
	require.Equal(t, deployedAddress, address)

	_, err = ResolveAddress(app, constants.LocalNetwork, []string{"0x12"})
	require.Error(t, err)

	_, err = ResolveAddress(app, constants.LocalNetwork, nil)
	require.ErrorIs(t, err, ErrNoAddress)
	require.ErrorIs(t, err, models.ErrNotDeployed)

	require.NoError(t, app.RecordDeployment(constants.ContractName, constants.LocalNetwork, models.NetworkData{Address: deployedAddress}))
	address, err = ResolveAddress(app, constants.LocalNetwork, nil)
	require.NoError(t, err)
	require.Equal(t, deployedAddress, address)
}

func TestGetNetwork(t *testing.T) {
	app := testutils.SetupTestInTempDir(t, nil)
	network, err := GetNetwork(app, ChainSpec{})
	require.NoError(t, err)
	require.Equal(t, constants.LocalNetwork, network.Name)
	require.Equal(t, constants.DefaultLocalRPCURL, network.RPCURL)

	network, err = GetNetwork(app, ChainSpec{Network: constants.LocalNetwork, RPCEndpoint: "http://127.0.0.1:9650/ext/bc/C/rpc"})
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9650/ext/bc/C/rpc", network.RPCURL)

	_, err = GetNetwork(app, ChainSpec{Network: "mainnet"})
	require.ErrorIs(t, err, config.ErrUnknownNetwork)
	// goerli without a configured private key is still usable for reads and --private-key
	network, err = GetNetwork(app, ChainSpec{Network: constants.GoerliNetwork})
	require.NoError(t, err)
	require.Empty(t, network.Accounts)

	_, err = GetNetwork(app, ChainSpec{Network: constants.LocalNetwork, RPCEndpoint: "not a url"})
	require.ErrorIs(t, err, config.ErrInvalidNetwork)
}

func TestChainSigner(t *testing.T) {
	signers, err := accounts.FromMnemonic(constants.DefaultLocalMnemonic, constants.LocalAccountsHDPath, 3)
	require.NoError(t, err)
	prompter := prompts.NewPrompter()
	goerli := Chain{Network: config.Network{Name: constants.GoerliNetwork, RPCURL: constants.GoerliAlchemyURLBase}}
	local := Chain{Network: config.Network{
		Name:     constants.LocalNetwork,
		RPCURL:   constants.DefaultLocalRPCURL,
		Mnemonic: constants.DefaultLocalMnemonic,
	}}

	pkf := PrivateKeyFlags{PrivateKey: signers[2].PrivateKeyHex()}
	signer, err := pkf.ChainSigner(prompter, goerli, "deploy the contract")
	require.NoError(t, err)
	require.Equal(t, signers[2].Address, signer.Address)

	pkf = PrivateKeyFlags{}
	_, err = pkf.ChainSigner(prompter, goerli, "deploy the contract")
	require.ErrorIs(t, err, accounts.ErrNoSigners)

	pkf = PrivateKeyFlags{AccountIndex: 1}
	signer, err = pkf.ChainSigner(prompter, local, "deploy the contract")
	require.NoError(t, err)
	require.Equal(t, signers[1].Address, signer.Address)
}

func TestGetSigner(t *testing.T) {
	signers, err := accounts.FromMnemonic(constants.DefaultLocalMnemonic, constants.LocalAccountsHDPath, 3)
	require.NoError(t, err)
	prompter := prompts.NewPrompter()

	pkf := PrivateKeyFlags{AccountIndex: 1}
	signer, err := pkf.GetSigner(prompter, signers, "sign")
	require.NoError(t, err)
	require.Equal(t, signers[1].Address, signer.Address)

	pkf = PrivateKeyFlags{PrivateKey: signers[2].PrivateKeyHex(), AccountIndex: 1}
	signer, err = pkf.GetSigner(prompter, signers, "sign")
	require.NoError(t, err)
	require.Equal(t, signers[2].Address, signer.Address)

	pkf = PrivateKeyFlags{AccountIndex: 5}
	_, err = pkf.GetSigner(prompter, signers, "sign")
	require.ErrorIs(t, err, accounts.ErrNoSigners)
}
