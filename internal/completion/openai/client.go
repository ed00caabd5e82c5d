// Package openai implements port.CompletionClient for OpenAI-compatible
// chat-completions endpoints. Groq and OpenAI both speak this protocol.
package openai

import (
	"net/http"
	"strings"

	"docanalyzer/internal/config"
)

const (
	GroqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"
	OpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

	GroqDefaultModel   = "llama-3.1-8b-instant"
	OpenAIDefaultModel = "gpt-4o-mini"
)

// Client implements port.CompletionClient using a chat-completions API.
type Client struct {
	provider  string
	apiKey    string
	model     string
	maxTokens int
	endpoint  string
	client    *http.Client
}

// NewGroqClient creates a client for the Groq API.
func NewGroqClient(cfg *config.CompletionConfig) *Client {
	return newClient("groq", cfg, resolveEndpoint(cfg.BaseURL, GroqEndpoint), GroqDefaultModel)
}

// NewOpenAIClient creates a client for the OpenAI API.
func NewOpenAIClient(cfg *config.CompletionConfig) *Client {
	return newClient("openai", cfg, resolveEndpoint(cfg.BaseURL, OpenAIEndpoint), OpenAIDefaultModel)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(provider string, cfg *config.CompletionConfig, endpoint string) *Client {
	return newClient(provider, cfg, endpoint, GroqDefaultModel)
}

func resolveEndpoint(baseURL, fallback string) string {
	if baseURL == "" {
		return fallback
	}
	return strings.TrimRight(baseURL, "/") + "/chat/completions"
}

func newClient(provider string, cfg *config.CompletionConfig, endpoint, defaultModel string) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		provider:  provider,
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: cfg.MaxTokens,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: cfg.Timeout()},
	}
}

// Model returns the model the client sends requests to.
func (c *Client) Model() string {
	return c.model
}
