// Package grok wraps the xAI chat completion API behind a resilient client.
// The xAI API speaks the OpenAI chat completion wire format, so transport is
// delegated to the go-openai SDK pointed at the xAI base URL.
//
// Every failure kind (transport, non-2xx status, malformed envelope) is
// retried the same way with a fixed delay until the attempt budget runs out.
// Errors are still classified into apierr sentinels so that callers can map
// them to exit codes, but classification never changes retry behavior.
package grok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-stylegen/internal/apierr"
)

// Default client configuration.
const (
	// DefaultBaseURL is the xAI API endpoint.
	DefaultBaseURL = "https://api.x.ai/v1"

	// DefaultModel is the completion model used by both pipeline stages.
	DefaultModel = "grok-beta"

	// Retry configuration: a fixed delay between attempts, no backoff growth.
	defaultMaxAttempts = 3
	defaultRetryDelay  = 5 * time.Second

	// HTTP timeout for chat completion requests.
	defaultHTTPTimeout = 5 * time.Minute
)

// chatCompleter is an internal interface for chat completion.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client sends chat completion requests to the xAI API with fixed-delay
// retries. The zero value is not usable; construct with NewClient.
type Client struct {
	client      chatCompleter
	model       string
	maxAttempts int
	retryDelay  time.Duration
	log         *logrus.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxAttempts sets the total number of attempts per call (including the first).
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between failed attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithLogger sets the logger for per-attempt diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// withChatCompleter sets a custom chat completer (for testing).
func withChatCompleter(cc chatCompleter) Option {
	return func(c *Client) {
		c.client = cc
	}
}

// NewClient creates a Client authenticating with apiKey against baseURL.
// An empty baseURL falls back to the public xAI endpoint.
// Returns ErrEmptyAPIKey if apiKey is empty.
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		model:       DefaultModel,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = discardLogger()
	}
	if c.client == nil {
		cfg := openai.DefaultConfig(apiKey)
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
		c.client = openai.NewClientWithConfig(cfg)
	}
	return c, nil
}

// Model returns the configured completion model.
func (c *Client) Model() string {
	return c.model
}

// Complete sends a two-message chat payload and returns the first generated
// message's text. A response without choices yields ErrEmptyCompletion, which
// is not retried: retries already happened around the HTTP call itself.
// After exhausting attempts the last error surfaces inside *apierr.RetryError.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	resp, err := c.createWithRetry(ctx, system, user, temperature)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// Envelope sends a two-message chat payload and returns the full response
// envelope serialized as JSON, without interpreting its contents. The style
// analysis stage stores this verbatim.
func (c *Client) Envelope(ctx context.Context, system, user string, temperature float32) (json.RawMessage, error) {
	resp, err := c.createWithRetry(ctx, system, user, temperature)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("serialize response envelope: %w", err)
	}
	return raw, nil
}

// createWithRetry issues the completion request under the fixed-delay retry policy.
func (c *Client) createWithRetry(ctx context.Context, system, user string, temperature float32) (openai.ChatCompletionResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	cfg := apierr.RetryConfig{
		MaxAttempts: c.maxAttempts,
		Delay:       c.retryDelay,
	}

	return apierr.Retry(ctx, cfg, func(attempt int) (openai.ChatCompletionResponse, error) {
		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			classified := classifyError(err)
			c.log.WithFields(logrus.Fields{
				"model":   c.model,
				"attempt": fmt.Sprintf("%d/%d", attempt, c.maxAttempts),
				"status":  statusCode(err),
				"error":   truncate(classified.Error(), 200),
			}).Warn("chat completion attempt failed")
			return openai.ChatCompletionResponse{}, classified
		}
		return resp, nil
	})
}

// classifyError maps transport and API errors to apierr sentinels.
// Classification is informational: retry treats all of these the same.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrRateLimit)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrAuthFailed)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrServer)
		case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}

// statusCode extracts the HTTP status from a typed API error, 0 otherwise.
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// truncate shortens s to at most n bytes for log records.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// discardLogger returns a logger that drops everything.
func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
