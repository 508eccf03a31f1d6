// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "time"

const (
	DefaultPerms755        = 0o755
	WriteReadReadPerms     = 0o644
	UserOnlyWriteReadPerms = 0o600

	BaseDirName = ".glanger"
	LogDir      = "logs"
	LogName     = "glanger"

	DeploymentsDir = "deployments"
	SidecarSuffix  = ".json"
	SidecarVersion = "1.0.0"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	APIRequestTimeout      = 10 * time.Second
	APIRequestLargeTimeout = 30 * time.Second
	TxConfirmationTimeout  = 2 * time.Minute
	VerificationTimeout    = 5 * time.Minute

	DefaultLogLevel = "ERROR"
)

// environment variables consumed by the tool
const (
	DotenvConfigPathEnvVar = "DOTENV_CONFIG_PATH"
	DefaultDotenvPath      = "./.env"

	AlchemyAPIKeyEnvVar    = "ALCHEMY_API_KEY"
	GoerliPrivateKeyEnvVar = "GOERLI_PRIVATE_KEY"
	EtherscanAPIKeyEnvVar  = "ETHERSCAN_API_KEY"
	ReportGasEnvVar        = "REPORT_GAS"
	NFTMetadataURLEnvVar   = "NFT_METADATA_URL"
	ExecuteAddressEnvVar   = "NEXT_PUBLIC_EXECUTE_ADDRESS"
	LocalRPCURLEnvVar      = "LOCAL_RPC_URL"
	LocalMnemonicEnvVar    = "LOCAL_MNEMONIC"
	ArtifactPathEnvVar     = "GLANGER_ARTIFACT"
	E2EEnvVar              = "RUN_E2E"
)

// networks
const (
	GoerliNetwork        = "goerli"
	LocalNetwork         = "local"
	GoerliChainID        = 5
	GoerliAlchemyURLBase = "https://eth-goerli.alchemyapi.io/v2/"
	GoerliEtherscanAPI   = "https://api-goerli.etherscan.io/api"
	GoerliEtherscanURL   = "https://goerli.etherscan.io"
	MainnetEtherscanAPI  = "https://api.etherscan.io/api"

	DefaultLocalRPCURL = "http://127.0.0.1:8545"
	// development chains (hardhat, anvil) prefund the accounts derived from this mnemonic
	DefaultLocalMnemonic = "test test test test test test test test test test test junk"
	DefaultLocalAccounts = 20
	LocalAccountsHDPath  = "m/44'/60'/0'/0"

	SolidityVersion = "0.8.17"
)

// gas reporter
const (
	GasReporterCurrency     = "USD"
	GasReporterGasPriceGwei = 21
)

// contract
const (
	ContractName                 = "GlangerNFT"
	ArtifactsDir                 = "artifacts"
	DefaultOpenBoxBeforeTokenURI = "hidden.json"
	DefaultMaxTotalSupply        = 7777
	DefaultOpenBoxTime           = 1669445844
)
