package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"web-groq/internal/log"
)

// Client handles communication with the Serper search API
type Client struct {
	baseURL    string
	apiKey     string
	maxResults int
	httpClient *http.Client
	logger     log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client's logger.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new search client. The HTTP client has no timeout;
// callers bound the request through ctx if they need to.
func NewClient(baseURL, apiKey string, maxResults int, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search performs a web search and returns at most maxResults organic
// results in provider order.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	jsonData, err := json.Marshal(Request{Query: query, Num: c.maxResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var searchResp Response
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := searchResp.Organic
	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	if results == nil {
		results = []Result{}
	}

	c.logger.Debug("search completed", "query", query, "results", len(results))
	return results, nil
}
