// Package claude implements port.CompletionClient on the Anthropic Messages API.
package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"docanalyzer/internal/completion"
	"docanalyzer/internal/config"
	"docanalyzer/internal/port"
)

const (
	providerName = "claude"
	DefaultModel = "claude-sonnet-4-20250514"
)

// Messager is the subset of the SDK's message service the client uses.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client implements port.CompletionClient using the Anthropic SDK.
type Client struct {
	messages  Messager
	model     string
	maxTokens int64
}

// NewClient creates a Claude client. SDK retries are disabled.
func NewClient(cfg *config.CompletionConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	c := anthropic.NewClient(opts...)
	return NewClientWithMessager(&c.Messages, cfg)
}

// NewClientWithMessager creates a client around an existing Messager (for testing).
func NewClientWithMessager(m Messager, cfg *config.CompletionConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Client{messages: m, model: model, maxTokens: maxTokens}
}

func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
		Temperature: anthropic.Float(req.Temperature),
	})
	if err != nil {
		return nil, classifyError(err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}

	model := string(resp.Model)
	if model == "" {
		model = c.model
	}
	return &port.CompletionResponse{
		Text:      sb.String(),
		Model:     model,
		Truncated: string(resp.StopReason) == "max_tokens",
	}, nil
}

func classifyError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		retryAfter := 0
		if apiErr.Response != nil {
			retryAfter = completion.ParseRetryAfterHeader(apiErr.Response.Header.Get("Retry-After"))
		}
		return completion.NewRateLimitError(providerName, err, retryAfter)
	}
	return completion.Unavailable(providerName, fmt.Errorf("calling anthropic API: %w", err))
}
