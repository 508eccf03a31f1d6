// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config resolves the networks, explorer and gas reporter settings
// used by the deploy and verify commands, from a dotenv file, an optional
// yaml file and the process environment.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/constants"
	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

var (
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrInvalidNetwork    = errors.New("invalid network configuration")
	ErrMissingEtherscan  = errors.New("etherscan api key is not configured")
)

// every environment variable the tool knows about, as read into Config.Env
var envKeys = []string{
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

type Network struct {
	Name     string   `mapstructure:"-"`
	RPCURL   string   `mapstructure:"url"`
	Accounts []string `mapstructure:"accounts"`
	// accounts are derived from the mnemonic when no raw keys are given
	Mnemonic                   string `mapstructure:"mnemonic"`
	ChainID                    uint64 `mapstructure:"chainId"`
	AllowUnlimitedContractSize bool   `mapstructure:"allowUnlimitedContractSize"`
	EtherscanAPIURL            string `mapstructure:"etherscanApiUrl"`
	EtherscanBrowserURL        string `mapstructure:"etherscanBrowserUrl"`
}

// Etherscan is the explorer used for verification. Empty urls fall back to
// the explorer of the selected network.
type Etherscan struct {
	APIKey     string
	APIURL     string
	BrowserURL string
}

type GasReporter struct {
	Enabled      bool
	Currency     string
	GasPriceGwei uint64
}

type Config struct {
	Solidity       string
	DefaultNetwork string
	Networks       map[string]Network
	Etherscan      Etherscan
	GasReporter    GasReporter
	Env            map[string]string
	// dotenv file that was read, empty if none was found
	EnvFile string
}

type LoadOptions struct {
	// dotenv path, overrides DOTENV_CONFIG_PATH
	EnvFile string
	// optional yaml file adding or overriding networks
	ConfigFile string
	Log        *zap.Logger
}

// Load builds the configuration. Values in the process environment take
// precedence over the dotenv file. A missing dotenv file is not an error.
func Load(opts LoadOptions) (*Config, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	envFile := opts.EnvFile
	v := viper.New()
	v.AutomaticEnv()
	if envFile == "" {
		envFile = v.GetString(constants.DotenvConfigPathEnvVar)
	}
	if envFile == "" {
		envFile = constants.DefaultDotenvPath
	}
	envFile = utils.ExpandHome(envFile)
	conf := &Config{
		Solidity:       constants.SolidityVersion,
		DefaultNetwork: constants.LocalNetwork,
		Env:            map[string]string{},
	}
	if utils.FileExists(envFile) {
		v.SetConfigType("env")
		v.SetConfigFile(envFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failure reading env file %s: %w", envFile, err)
		}
		conf.EnvFile = envFile
		log.Info("Using env file", zap.String("env-file", envFile))
	} else {
		log.Info("No env file found", zap.String("env-file", envFile))
	}
	for _, key := range envKeys {
		conf.Env[key] = strings.TrimSpace(v.GetString(key))
	}
	conf.Networks = builtinNetworks(conf.Env)
	conf.Etherscan = Etherscan{APIKey: conf.Env[constants.EtherscanAPIKeyEnvVar]}
	conf.GasReporter = GasReporter{
		Enabled:      conf.Env[constants.ReportGasEnvVar] == "true",
		Currency:     constants.GasReporterCurrency,
		GasPriceGwei: constants.GasReporterGasPriceGwei,
	}
	if opts.ConfigFile != "" {
		if err := conf.mergeConfigFile(utils.ExpandHome(opts.ConfigFile)); err != nil {
			return nil, err
		}
		log.Info("Using config file", zap.String("config-file", opts.ConfigFile))
	}
	return conf, nil
}

func builtinNetworks(env map[string]string) map[string]Network {
	localURL := env[constants.LocalRPCURLEnvVar]
	if localURL == "" {
		localURL = constants.DefaultLocalRPCURL
	}
	localMnemonic := env[constants.LocalMnemonicEnvVar]
	if localMnemonic == "" {
		localMnemonic = constants.DefaultLocalMnemonic
	}
	goerliAccounts := []string{}
	if key := env[constants.GoerliPrivateKeyEnvVar]; key != "" {
		goerliAccounts = append(goerliAccounts, key)
	}
	return map[string]Network{
		constants.GoerliNetwork: {
			Name:                constants.GoerliNetwork,
			RPCURL:              constants.GoerliAlchemyURLBase + env[constants.AlchemyAPIKeyEnvVar],
			Accounts:            goerliAccounts,
			ChainID:             constants.GoerliChainID,
			EtherscanAPIURL:     constants.GoerliEtherscanAPI,
			EtherscanBrowserURL: constants.GoerliEtherscanURL,
		},
		constants.LocalNetwork: {
			Name:                       constants.LocalNetwork,
			RPCURL:                     localURL,
			Mnemonic:                   localMnemonic,
			AllowUnlimitedContractSize: true,
		},
	}
}

func (c *Config) mergeConfigFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failure reading config file %s: %w", path, err)
	}
	networks := map[string]Network{}
	if err := v.UnmarshalKey("networks", &networks); err != nil {
		return fmt.Errorf("failure decoding networks on %s: %w", path, err)
	}
	for name, network := range networks {
		network.Name = name
		c.Networks[name] = network
	}
	if defaultNetwork := v.GetString("defaultNetwork"); defaultNetwork != "" {
		c.DefaultNetwork = defaultNetwork
	}
	if apiURL := v.GetString("etherscan.apiUrl"); apiURL != "" {
		c.Etherscan.APIURL = apiURL
	}
	if browserURL := v.GetString("etherscan.browserUrl"); browserURL != "" {
		c.Etherscan.BrowserURL = browserURL
	}
	if v.IsSet("gasReporter.currency") {
		c.GasReporter.Currency = v.GetString("gasReporter.currency")
	}
	if v.IsSet("gasReporter.gasPrice") {
		c.GasReporter.GasPriceGwei = v.GetUint64("gasReporter.gasPrice")
	}
	return nil
}

// Network returns the network named [name], or the default network if [name] is empty
func (c *Config) Network(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	network, ok := c.Networks[strings.ToLower(name)]
	if !ok {
		network, ok = c.Networks[name]
	}
	if !ok {
		return Network{}, fmt.Errorf("%w %q: available networks are %s", ErrUnknownNetwork, name, strings.Join(c.NetworkNames(), ", "))
	}
	return network, nil
}

// NetworkNames returns the configured network names, sorted
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Getenv returns the value read for a known environment variable
func (c *Config) Getenv(key string) string {
	return c.Env[key]
}

// EtherscanFor resolves the explorer settings for [n], failing if no api key
// was configured
func (c *Config) EtherscanFor(n Network) (Etherscan, error) {
	if c.Etherscan.APIKey == "" {
		return Etherscan{}, fmt.Errorf("%w: set %s", ErrMissingEtherscan, constants.EtherscanAPIKeyEnvVar)
	}
	explorer := c.Etherscan
	if explorer.APIURL == "" {
		explorer.APIURL = n.EtherscanAPIURL
	}
	if explorer.BrowserURL == "" {
		explorer.BrowserURL = n.EtherscanBrowserURL
	}
	return explorer, nil
}

// Validate checks that the network can be dialed and that any configured
// account key is well formed. Networks without keys are valid: commands that
// sign resolve their signer separately.
func (n Network) Validate() error {
	if n.RPCURL == "" {
		return fmt.Errorf("%w %s: empty rpc url", ErrInvalidNetwork, n.Name)
	}
	if err := utils.ValidateURLFormat(n.RPCURL); err != nil {
		return fmt.Errorf("%w %s: rpc url %q: %w", ErrInvalidNetwork, n.Name, n.RPCURL, err)
	}
	for i, account := range n.Accounts {
		if _, err := crypto.HexToECDSA(strings.TrimPrefix(account, "0x")); err != nil {
			return fmt.Errorf("%w %s: account %d: %w", ErrInvalidNetwork, n.Name, i, err)
		}
	}
	return nil
}

// IsLocal indicates whether the network is a development chain whose clock and
// blocks can be driven through evm_* rpc methods
func (n Network) IsLocal() bool {
	return n.Name == constants.LocalNetwork || n.AllowUnlimitedContractSize
}
