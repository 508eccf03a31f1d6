// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// longest piece of an error response body kept in the returned error
const maxErrorBody = 256

var (
	client             = http.DefaultClient
	errHTTPStatusNotOK = errors.New("non-200 HTTP status code")
)

// MakeGetRequest gets [endpoint] with [query] appended, returning the body
func MakeGetRequest(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return doRequest(req)
}

// MakePostFormRequest posts [form] url-encoded to [endpoint], returning the body
func MakePostFormRequest(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(req)
}

func doRequest(req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failure reading response from %s: %w", req.URL.Host, err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: %d %s", errHTTPStatusNotOK, resp.StatusCode, snippet)
	}
	return body, nil
}

func ValidateURLFormat(input string) error {
	_, err := url.ParseRequestURI(input)
	return err
}
