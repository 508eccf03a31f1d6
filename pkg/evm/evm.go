// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

const repeatsOnFailure = 3

var (
	sleepBetweenRepeats = 1 * time.Second
	nodePollInterval    = 1 * time.Second

	ErrNoScheme = errors.New("url has no scheme and protocol could not be determined")
)

// EthClient is the subset of ethclient.Client used by the tool. It is enough to
// deploy, transact with and watch contracts through the bind package.
type EthClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Close()
}

// used to mock the connection function
var ethclientDialContext = func(ctx context.Context, rpcURL string) (EthClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// wraps over ethclient for calls used by the tool. features:
// - finds out url scheme in case it is missing, to connect to ws/wss/http/https
// - repeats to try to recover from failures, generating its own context for each call
// - adds the rpc url to errors
type Client struct {
	EthClient EthClient
	URL       string
}

// indicates if the given rpc url has schema or not
func HasScheme(rpcURL string) (bool, error) {
	parsedURL, err := url.Parse(rpcURL)
	if err != nil {
		if !strings.Contains(err.Error(), "first path segment in URL cannot contain colon") {
			return false, err
		}
		return false, nil
	}
	return strings.Contains(rpcURL, "://") && parsedURL.Scheme != "", nil
}

// a dial failure for one scheme that still leaves the next candidate possible
type schemeProbe struct {
	scheme string
	// error fragments meaning the endpoint speaks another protocol
	retryOn []string
	// http dials are lazy, a query is needed to see the endpoint
	query bool
}

var schemeProbes = []schemeProbe{
	{scheme: "ws://", retryOn: []string{"websocket: bad handshake"}},
	{scheme: "wss://", retryOn: []string{"websocket: bad handshake", "first record does not look like a TLS handshake"}},
	{scheme: "https://", retryOn: []string{"server gave HTTP response to HTTPS client"}, query: true},
	{scheme: "http://"},
}

// tries to connect an ethclient to a rpc url without scheme,
// by trying out ws, wss, https and http in turn
func GetClientWithoutScheme(rpcURL string) (EthClient, string, error) {
	if b, err := HasScheme(rpcURL); err != nil {
		return nil, "", err
	} else if b {
		return nil, "", fmt.Errorf("url %s does have scheme", rpcURL)
	}
	ctx, cancel := utils.GetAPILargeContext()
	defer cancel()
	for _, probe := range schemeProbes {
		client, err := ethclientDialContext(ctx, probe.scheme+rpcURL)
		if err == nil && probe.query {
			_, err = client.ChainID(ctx)
		}
		if err == nil {
			return client, probe.scheme, nil
		}
		if !containsAny(err.Error(), probe.retryOn) {
			break
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNoScheme, rpcURL)
}

func containsAny(s string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}

// connects an evm client to the given [rpcURL]
// supports [repeatsOnFailure] failures
func GetClient(rpcURL string) (Client, error) {
	client := Client{
		URL: rpcURL,
	}
	hasScheme, err := HasScheme(rpcURL)
	if err != nil {
		return client, fmt.Errorf("failure determining the scheme of url %s: %w", rpcURL, err)
	}
	client.EthClient, err = utils.RetryWithContextGen(
		utils.GetAPILargeContext,
		func(ctx context.Context) (EthClient, error) {
			if hasScheme {
				return ethclientDialContext(ctx, rpcURL)
			}
			client, _, err := GetClientWithoutScheme(rpcURL)
			return client, err
		},
		repeatsOnFailure,
		sleepBetweenRepeats,
	)
	if err != nil {
		err = fmt.Errorf("failure connecting to %s: %w", rpcURL, err)
	}
	return client, err
}

// retry runs [f] with a fresh context up to [repeatsOnFailure] times,
// describing failures as [what] on the client url
func retry[T any](client Client, what string, f func(context.Context) (T, error)) (T, error) {
	result, err := utils.RetryWithContextGen(utils.GetAPILargeContext, f, repeatsOnFailure, sleepBetweenRepeats)
	if err != nil {
		err = fmt.Errorf("failure %s on %s: %w", what, client.URL, err)
	}
	return result, err
}

// closes underlying ethclient connection
func (client Client) Close() {
	if client.EthClient != nil {
		client.EthClient.Close()
	}
}

// indicates wether a contract is deployed on [contractAddress]
func (client Client) ContractAlreadyDeployed(contractAddress common.Address) (bool, error) {
	code, err := retry(client, "obtaining code at "+contractAddress.Hex(), func(ctx context.Context) ([]byte, error) {
		return client.EthClient.CodeAt(ctx, contractAddress, nil)
	})
	return len(code) != 0, err
}

// returns the balance for [address], in wei
func (client Client) GetAddressBalance(address common.Address) (*big.Int, error) {
	return retry(client, "obtaining balance for "+address.Hex(), func(ctx context.Context) (*big.Int, error) {
		return client.EthClient.BalanceAt(ctx, address, nil)
	})
}

// returns the nonce at [address]
func (client Client) NonceAt(address common.Address) (uint64, error) {
	return retry(client, "obtaining nonce for "+address.Hex(), func(ctx context.Context) (uint64, error) {
		return client.EthClient.NonceAt(ctx, address, nil)
	})
}

func (client Client) GetChainID() (*big.Int, error) {
	return retry(client, "getting chain id", client.EthClient.ChainID)
}

// returns the timestamp of the latest block, which on development chains
// includes any time travel applied through evm_increaseTime
func (client Client) LatestBlockTimestamp() (uint64, error) {
	return retry(client, "retrieving latest header", func(ctx context.Context) (uint64, error) {
		header, err := client.EthClient.HeaderByNumber(ctx, nil)
		if err != nil {
			return 0, err
		}
		return header.Time, nil
	})
}

// WaitForNode polls the chain id until the node answers or [ctx] is done
func (client Client) WaitForNode(ctx context.Context) error {
	ticker := time.NewTicker(nodePollInterval)
	defer ticker.Stop()
	for {
		callCtx, cancel := utils.GetAPIContext()
		_, err := client.EthClient.ChainID(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("node at %s not answering: %w", client.URL, errors.Join(ctx.Err(), err))
		case <-ticker.C:
		}
	}
}
