// Package gemini implements port.CompletionClient on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"docanalyzer/internal/completion"
	"docanalyzer/internal/config"
	"docanalyzer/internal/port"
)

const (
	providerName = "gemini"
	DefaultModel = "gemini-2.0-flash"
)

// Generator is the subset of genai.Models the client uses.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements port.CompletionClient using the genai SDK.
type Client struct {
	models    Generator
	model     string
	maxTokens int32
}

// NewClient creates a Gemini client backed by the Gemini API.
func NewClient(ctx context.Context, cfg *config.CompletionConfig) (*Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	gc, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing genai client: %w", err)
	}
	return NewClientWithGenerator(gc.Models, cfg), nil
}

// clampTokens fits a configured token limit into the API's int32 field.
// Non-positive values leave the limit to the model.
func clampTokens(n int) int32 {
	switch {
	case n <= 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(n)
	}
}

// NewClientWithGenerator creates a client around an existing Generator (for testing).
func NewClientWithGenerator(g Generator, cfg *config.CompletionConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: g, model: model, maxTokens: clampTokens(cfg.MaxTokens)}
}

func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if c.maxTokens > 0 {
		genCfg.MaxOutputTokens = c.maxTokens
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	resp, err := c.models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return nil, classifyError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, completion.Unavailable(providerName, errors.New("empty response from API: no candidates"))
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}

	model := resp.ModelVersion
	if model == "" {
		model = c.model
	}
	return &port.CompletionResponse{
		Text:      sb.String(),
		Model:     model,
		Truncated: candidate.FinishReason == genai.FinishReasonMaxTokens,
	}, nil
}

func classifyError(err error) error {
	if code, ok := apiErrorCode(err); ok && code == http.StatusTooManyRequests {
		return completion.NewRateLimitError(providerName, err, 0)
	}
	return completion.Unavailable(providerName, fmt.Errorf("calling gemini API: %w", err))
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
