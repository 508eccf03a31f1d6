// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package etherscan submits contract source verification requests to an
// Etherscan compatible explorer api and waits for their outcome.
package etherscan

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/glanger-labs/glanger-cli/pkg/utils"
)

const (
	statusOK = "1"

	resultPending         = "Pending in queue"
	resultVerified        = "Pass - Verified"
	resultAlreadyVerified = "Already Verified"
	// wording of the verifysourcecode rejection for verified contracts
	resultSourceAlreadyVerified = "Contract source code already verified"

	codeFormatStandardJSON = "solidity-standard-json-input"
)

var (
	ErrMissingAPIKey      = errors.New("explorer api key is empty")
	ErrMissingAPIURL      = errors.New("explorer api url is empty")
	ErrVerificationFailed = errors.New("verification failed")
	ErrRequestRejected    = errors.New("explorer rejected the request")
)

// checkverifystatus polling period, a var so tests can shorten it
var pollInterval = 5 * time.Second

type Client struct {
	APIURL     string
	BrowserURL string
	APIKey     string
	Log        *zap.Logger
}

// Request is everything the explorer needs to rebuild the deployed bytecode
type Request struct {
	Address common.Address
	// standard json compiler input, from the build info
	SourceCode json.RawMessage
	// source:contract
	ContractName    string
	CompilerVersion string
	// abi encoded constructor arguments, without the creation bytecode
	ConstructorArgs []byte
}

type Status int

const (
	Verified Status = iota
	AlreadyVerified
)

func (s Status) String() string {
	if s == AlreadyVerified {
		return "already verified"
	}
	return "verified"
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// result returns the result field when it is a plain string
func (r response) result() string {
	var s string
	if err := json.Unmarshal(r.Result, &s); err != nil {
		return string(r.Result)
	}
	return s
}

func New(apiURL string, browserURL string, apiKey string, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if apiURL == "" {
		return nil, ErrMissingAPIURL
	}
	if err := utils.ValidateURLFormat(apiURL); err != nil {
		return nil, fmt.Errorf("invalid explorer api url %q: %w", apiURL, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		APIURL:     apiURL,
		BrowserURL: strings.TrimSuffix(browserURL, "/"),
		APIKey:     apiKey,
		Log:        log,
	}, nil
}

// AddressURL returns the explorer page of [address], or empty if no browser url is known
func (c *Client) AddressURL(address common.Address) string {
	if c.BrowserURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", c.BrowserURL, address.Hex())
}

// Submit sends the verifysourcecode request and returns the receipt guid to poll.
// Contracts the explorer already verified are reported as AlreadyVerified with no guid.
func (c *Client) Submit(ctx context.Context, req Request) (string, Status, error) {
	values := url.Values{}
	values.Set("apikey", c.APIKey)
	values.Set("module", "contract")
	values.Set("action", "verifysourcecode")
	values.Set("contractaddress", req.Address.Hex())
	values.Set("sourceCode", string(req.SourceCode))
	values.Set("codeformat", codeFormatStandardJSON)
	values.Set("contractname", req.ContractName)
	values.Set("compilerversion", req.CompilerVersion)
	// the misspelling is part of the explorer api
	values.Set("constructorArguements", hex.EncodeToString(req.ConstructorArgs))
	bs, err := utils.MakePostFormRequest(ctx, c.APIURL, values)
	if err != nil {
		return "", 0, fmt.Errorf("failure submitting verification of %s: %w", req.Address.Hex(), err)
	}
	resp, err := decode(bs)
	if err != nil {
		return "", 0, err
	}
	result := resp.result()
	if resp.Status != statusOK {
		if isAlreadyVerified(result) {
			return "", AlreadyVerified, nil
		}
		return "", 0, fmt.Errorf("%w: %s: %s", ErrRequestRejected, resp.Message, result)
	}
	c.Log.Info("verification submitted", zap.String("address", req.Address.Hex()), zap.String("guid", result))
	return result, Verified, nil
}

// CheckStatus asks once for the outcome of [guid]. Pending reports false with no error.
func (c *Client) CheckStatus(ctx context.Context, guid string) (bool, Status, error) {
	values := url.Values{}
	values.Set("apikey", c.APIKey)
	values.Set("module", "contract")
	values.Set("action", "checkverifystatus")
	values.Set("guid", guid)
	bs, err := utils.MakeGetRequest(ctx, c.APIURL, values)
	if err != nil {
		return false, 0, fmt.Errorf("failure checking verification %s: %w", guid, err)
	}
	resp, err := decode(bs)
	if err != nil {
		return false, 0, err
	}
	result := resp.result()
	switch {
	case result == resultPending:
		return false, 0, nil
	case result == resultVerified:
		return true, Verified, nil
	case isAlreadyVerified(result):
		return true, AlreadyVerified, nil
	default:
		return true, 0, fmt.Errorf("%w: %s", ErrVerificationFailed, result)
	}
}

// WaitForVerification polls [guid] until the explorer settles or [ctx] is done
func (c *Client) WaitForVerification(ctx context.Context, guid string) (Status, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		done, status, err := c.CheckStatus(ctx, guid)
		if done || err != nil {
			return status, err
		}
		c.Log.Debug("verification pending", zap.String("guid", guid))
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("verification %s still pending: %w", guid, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Verify submits [req] and waits for the explorer to accept or reject it.
// Contracts whose source the explorer already holds are not resubmitted.
func (c *Client) Verify(ctx context.Context, req Request) (Status, error) {
	verified, err := c.IsVerified(ctx, req.Address)
	if err != nil {
		c.Log.Info("could not look up existing source", zap.String("address", req.Address.Hex()), zap.Error(err))
	} else if verified {
		return AlreadyVerified, nil
	}
	guid, status, err := c.Submit(ctx, req)
	if err != nil || status == AlreadyVerified {
		return status, err
	}
	return c.WaitForVerification(ctx, guid)
}

// IsVerified tells whether the explorer already holds the source of [address]
func (c *Client) IsVerified(ctx context.Context, address common.Address) (bool, error) {
	values := url.Values{}
	values.Set("apikey", c.APIKey)
	values.Set("module", "contract")
	values.Set("action", "getsourcecode")
	values.Set("address", address.Hex())
	bs, err := utils.MakeGetRequest(ctx, c.APIURL, values)
	if err != nil {
		return false, fmt.Errorf("failure getting source of %s: %w", address.Hex(), err)
	}
	resp, err := decode(bs)
	if err != nil {
		return false, err
	}
	if resp.Status != statusOK {
		return false, fmt.Errorf("%w: %s: %s", ErrRequestRejected, resp.Message, resp.result())
	}
	sources := []struct {
		SourceCode string `json:"SourceCode"`
	}{}
	if err := json.Unmarshal(resp.Result, &sources); err != nil {
		return false, fmt.Errorf("unexpected getsourcecode result: %w", err)
	}
	return len(sources) > 0 && sources[0].SourceCode != "", nil
}

func decode(bs []byte) (response, error) {
	resp := response{}
	if err := json.Unmarshal(bs, &resp); err != nil {
		return resp, fmt.Errorf("unexpected explorer response %q: %w", string(bs), err)
	}
	return resp, nil
}

func isAlreadyVerified(result string) bool {
	return strings.Contains(result, resultAlreadyVerified) ||
		strings.Contains(strings.ToLower(result), strings.ToLower(resultSourceAlreadyVerified))
}
