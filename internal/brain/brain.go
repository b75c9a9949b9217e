// Package brain talks to an OpenAI-compatible chat completion API.
//
// The whole conversation history is sent on every turn; the API is treated
// strictly as request/response with no streaming and no retries. A failed
// exchange leaves the user's last utterance in an unknown state, so callers
// are expected to abandon the conversation rather than retry.
package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message roles understood by the chat completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config contains configuration variables for the chat completion Client.
type Config struct {
	// APIKey is the bearer token used for authentication.
	APIKey string `json:"api_key" yaml:"api_key"`

	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier sent with every request.
	Model string `json:"model" yaml:"model"`

	// Temperature is the sampling temperature sent with every request.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout bounds a single API call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// NewConfig creates and returns a new Config instance with default settings.
// APIKey is empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		Timeout:     2 * time.Minute,
	}
}

// httpClient is an internal interface that abstracts *http.Client so tests
// can intercept requests without a live endpoint.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption defines a function signature for Client's functional options.
type ClientOption func(client *Client)

// WithHTTPClient creates a ClientOption that injects a pre-configured HTTP client.
func WithHTTPClient(c httpClient) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// Client calls the chat completion endpoint with a fixed model configuration.
type Client struct {
	config     *Config
	httpClient httpClient
}

// NewClient creates a new Client with the given Config and options.
func NewClient(config *Config, options ...ClientOption) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	client := &Client{
		config: config,
	}

	for _, opt := range options {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return client, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Index   int     `json:"index"`
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Chat sends the given ordered message history and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	reqBody := chatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: c.config.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", ErrNoCompletion
	}

	return chatResp.Choices[0].Message.Content, nil
}
