// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package etherscan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var contractAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

type fakeExplorer struct {
	t *testing.T

	lock     sync.Mutex
	submit   string
	statuses []string
	sources  string
	forms    []map[string]string
}

func (f *fakeExplorer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	require.NoError(f.t, r.ParseForm())
	f.lock.Lock()
	defer f.lock.Unlock()
	form := map[string]string{}
	for k := range r.Form {
		form[k] = r.Form.Get(k)
	}
	f.forms = append(f.forms, form)
	if form["apikey"] != "key" {
		write(w, "0", "NOTOK", "Invalid API Key")
		return
	}
	switch form["action"] {
	case "verifysourcecode":
		require.Equal(f.t, http.MethodPost, r.Method)
		if f.submit == "" {
			write(w, "0", "NOTOK", "Contract source code already verified")
			return
		}
		write(w, "1", "OK", f.submit)
	case "checkverifystatus":
		status := f.statuses[0]
		if len(f.statuses) > 1 {
			f.statuses = f.statuses[1:]
		}
		write(w, "1", "OK", status)
	case "getsourcecode":
		bs, _ := json.Marshal(map[string]interface{}{
			"status":  "1",
			"message": "OK",
			"result":  []map[string]string{{"SourceCode": f.sources}},
		})
		_, _ = w.Write(bs)
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func write(w http.ResponseWriter, status string, message string, result string) {
	bs, _ := json.Marshal(map[string]string{"status": status, "message": message, "result": result})
	_, _ = w.Write(bs)
}

func newExplorer(t *testing.T, f *fakeExplorer) *Client {
	t.Helper()
	f.t = t
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	prev := pollInterval
	pollInterval = time.Millisecond
	t.Cleanup(func() { pollInterval = prev })
	client, err := New(server.URL+"/api", "https://goerli.etherscan.io/", "key", nil)
	require.NoError(t, err)
	return client
}

func request() Request {
	return Request{
		Address:         contractAddress,
		SourceCode:      json.RawMessage(`{"language":"Solidity"}`),
		ContractName:    "contracts/GlangerNFT.sol:GlangerNFT",
		CompilerVersion: "v0.8.17+commit.8df45f5f",
		ConstructorArgs: []byte{0xab, 0xcd},
	}
}

func TestNew(t *testing.T) {
	_, err := New("https://api-goerli.etherscan.io/api", "", "", nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	_, err = New("", "", "key", nil)
	require.ErrorIs(t, err, ErrMissingAPIURL)
	_, err = New("not a url", "", "key", nil)
	require.Error(t, err)
	client, err := New("https://api-goerli.etherscan.io/api", "https://goerli.etherscan.io/", "key", nil)
	require.NoError(t, err)
	require.Equal(t, "https://goerli.etherscan.io/address/"+contractAddress.Hex()+"#code", client.AddressURL(contractAddress))
	client.BrowserURL = ""
	require.Empty(t, client.AddressURL(contractAddress))
}

func TestVerify(t *testing.T) {
	explorer := &fakeExplorer{
		submit:   "guid-1",
		statuses: []string{"Pending in queue", "Pending in queue", "Pass - Verified"},
	}
	client := newExplorer(t, explorer)
	status, err := client.Verify(context.Background(), request())
	require.NoError(t, err)
	require.Equal(t, Verified, status)

	require.Equal(t, "getsourcecode", explorer.forms[0]["action"])
	submitted := explorer.forms[1]
	require.Equal(t, "verifysourcecode", submitted["action"])
	require.Equal(t, contractAddress.Hex(), submitted["contractaddress"])
	require.Equal(t, `{"language":"Solidity"}`, submitted["sourceCode"])
	require.Equal(t, "solidity-standard-json-input", submitted["codeformat"])
	require.Equal(t, "contracts/GlangerNFT.sol:GlangerNFT", submitted["contractname"])
	require.Equal(t, "v0.8.17+commit.8df45f5f", submitted["compilerversion"])
	require.Equal(t, "abcd", submitted["constructorArguements"])
	require.Len(t, explorer.forms, 5)
	require.Equal(t, "guid-1", explorer.forms[4]["guid"])
}

func TestVerifySkipsPublishedSource(t *testing.T) {
	explorer := &fakeExplorer{submit: "guid-5", sources: "pragma solidity 0.8.17;"}
	client := newExplorer(t, explorer)
	status, err := client.Verify(context.Background(), request())
	require.NoError(t, err)
	require.Equal(t, AlreadyVerified, status)
	require.Len(t, explorer.forms, 1)
	require.Equal(t, "getsourcecode", explorer.forms[0]["action"])
}

func TestVerifyAlreadyVerified(t *testing.T) {
	client := newExplorer(t, &fakeExplorer{})
	status, err := client.Verify(context.Background(), request())
	require.NoError(t, err)
	require.Equal(t, AlreadyVerified, status)
	require.Equal(t, "already verified", status.String())

	client = newExplorer(t, &fakeExplorer{submit: "guid-2", statuses: []string{"Already Verified"}})
	status, err = client.Verify(context.Background(), request())
	require.NoError(t, err)
	require.Equal(t, AlreadyVerified, status)
}

func TestVerifyFailures(t *testing.T) {
	client := newExplorer(t, &fakeExplorer{submit: "guid-3", statuses: []string{"Fail - Unable to verify"}})
	_, err := client.Verify(context.Background(), request())
	require.ErrorIs(t, err, ErrVerificationFailed)
	require.ErrorContains(t, err, "Unable to verify")

	client.APIKey = "wrong"
	_, err = client.Verify(context.Background(), request())
	require.ErrorIs(t, err, ErrRequestRejected)
	require.ErrorContains(t, err, "Invalid API Key")
}

func TestWaitForVerificationCanceled(t *testing.T) {
	client := newExplorer(t, &fakeExplorer{submit: "guid-4", statuses: []string{"Pending in queue"}})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.WaitForVerification(ctx, "guid-4")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsVerified(t *testing.T) {
	explorer := &fakeExplorer{}
	client := newExplorer(t, explorer)
	verified, err := client.IsVerified(context.Background(), contractAddress)
	require.NoError(t, err)
	require.False(t, verified)

	explorer.sources = "pragma solidity 0.8.17;"
	verified, err = client.IsVerified(context.Background(), contractAddress)
	require.NoError(t, err)
	require.True(t, verified)
	require.Equal(t, contractAddress.Hex(), explorer.forms[1]["address"])
}
