// Package graphql executes fixed GraphQL documents against the Intuition
// Protocol indexing API and normalizes failures into result values.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// The two protocol endpoints. No other endpoints are configurable.
const (
	MainnetEndpoint = "https://mainnet.intuition.sh/v1/graphql"
	TestnetEndpoint = "https://testnet.intuition.sh/v1/graphql"
)

// requestTimeout bounds every outbound call.
const requestTimeout = 30 * time.Second

// Config selects the endpoint and optionally overrides the HTTP client.
// Tests point Endpoint at a mock server.
type Config struct {
	Endpoint string
	Client   *http.Client
}

// NewConfig returns the configuration for one of the two fixed networks.
func NewConfig(testnet bool) Config {
	endpoint := MainnetEndpoint
	if testnet {
		endpoint = TestnetEndpoint
	}
	return Config{Endpoint: endpoint}
}

// Result is the outcome of a single query execution. Exactly one of Data or
// Error is populated; Errors carries any GraphQL-level error list verbatim.
// An absent Data with no Error means the query matched nothing.
type Result struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors json.RawMessage `json:"errors,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Failed reports whether the call failed at the transport, HTTP, or decode
// layer. GraphQL-level errors do not count as failures.
func (r *Result) Failed() bool {
	return r.Error != ""
}

// Client issues GraphQL documents over HTTP POST to a single endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg Config) *Client {
	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{endpoint: cfg.Endpoint, http: httpClient}
}

// Endpoint returns the endpoint URL this client targets.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Execute POSTs a query document with its variables and returns the parsed
// response. It never returns a Go error: transport failures, non-2xx
// statuses, and undecodable bodies each surface as a distinct message in
// Result.Error so callers can degrade instead of aborting.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) *Result {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return &Result{Error: fmt.Sprintf("Request failed: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &Result{Error: fmt.Sprintf("Request failed: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Result{Error: fmt.Sprintf("URL Error: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Result{Error: fmt.Sprintf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Result{Error: fmt.Sprintf("Request failed: %v", err)}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return &Result{Error: fmt.Sprintf("Request failed: %v", err)}
	}
	return &result
}
