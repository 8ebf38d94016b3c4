package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"web-groq/internal/log"
)

// Client streams chat completions from an OpenAI-compatible endpoint
type Client struct {
	url         string
	apiKey      string
	model       string
	temperature float32
	httpClient  *http.Client
	logger      log.Logger
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

// NewClient creates a new chat client. Requests carry no timeout: a slow
// model blocks until it finishes or ctx is cancelled.
func NewClient(url, apiKey, model string, temperature float32, opts ...Option) *Client {
	c := &Client{
		url:         url,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{},
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Stream sends a streaming chat request and returns the full answer. Each
// fragment is passed to onChunk as it arrives. A non-2xx reply yields a
// *StatusError before any fragment is delivered.
func (c *Client) Stream(ctx context.Context, messages []Message, onChunk func(string)) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAI(messages),
		Temperature: c.temperature,
		Stream:      true,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug("streaming chat response", "model", c.model, "messages", len(messages))

	answer, err := Decode(resp.Body, onChunk, c.logger)
	if err != nil {
		return answer, fmt.Errorf("failed to stream response: %w", err)
	}
	return answer, nil
}
