// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// CredentialProvider supplies the bearer token attached to outgoing
// requests. The token is read at call time so a refreshed credential
// takes effect on the next request. An empty token means the request
// goes out unauthenticated.
type CredentialProvider interface {
	Token() string
}

// StaticToken is a CredentialProvider holding a fixed token. The empty
// value provides no credential.
type StaticToken string

// Token implements CredentialProvider.
func (t StaticToken) Token() string { return string(t) }

// FileToken reads the token from a file on every call, so rotating the
// file contents rotates the credential without restarting the console.
// Read errors yield an empty token; the backend's rejection of the
// unauthenticated request surfaces the problem.
type FileToken string

// Token implements CredentialProvider.
func (t FileToken) Token() string {
	data, err := os.ReadFile(string(t))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the backend base URL including the API prefix
	// (e.g. "http://localhost:8080/api/v1").
	BaseURL string
	// Credential supplies the bearer token. If nil, requests go out
	// unauthenticated.
	Credential CredentialProvider
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is a typed client for the travel-planning backend. It holds
// the base URL and HTTP transport; all methods are safe for concurrent
// use.
type Client struct {
	baseURL    string
	credential CredentialProvider
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client. The base URL is validated here; request
// URLs are built by direct concatenation against the trimmed form.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		credential: config.Credential,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// doRequest performs one HTTP round trip. 2xx returns the body bytes;
// non-2xx decodes the backend's error envelope into *APIError. The
// optional query values are appended to the request URL.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.credential != nil {
		if token := c.credential.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	var apiErr APIError
	if jsonErr := json.Unmarshal(responseBody, &apiErr); jsonErr != nil {
		// Non-JSON error body. Should not happen with this backend,
		// but fail loud with the raw body rather than hiding it.
		return nil, fmt.Errorf("api: unexpected %d response from %s %s: %s",
			response.StatusCode, method, path, string(responseBody))
	}
	apiErr.StatusCode = response.StatusCode

	c.logger.Warn("backend request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
	)
	return nil, &apiErr
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing %s response: %w", path, err)
	}
	return nil
}

// writeJSON performs a POST or PUT with a JSON body and decodes the
// returned entity into out.
func (c *Client) writeJSON(ctx context.Context, method, path string, requestBody, out any) error {
	body, err := c.doRequest(ctx, method, path, nil, requestBody)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing %s response: %w", path, err)
	}
	return nil
}
