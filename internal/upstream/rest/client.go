// Package rest is the HTTP adapter for the finance backend's read-only
// report endpoints.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"spendsight/internal/log"
	"spendsight/internal/upstream"
)

const defaultTimeout = 15 * time.Second

// Ensure interface conformance
var _ upstream.Backend = (*Client)(nil)

// Client calls the backend REST API and normalizes its responses into
// canonical records.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient builds a REST client for the given API base URL.
func NewClient(baseURL string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.WithComponent(log.ComponentUpstream),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs a GET and returns the raw body for normalization.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	c.logger.DebugContext(ctx, "Upstream response received",
		log.FieldEndpoint, path,
		log.FieldStatusCode, resp.StatusCode)

	return body, nil
}
