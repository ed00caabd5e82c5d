// Package providers wires every completion provider into the completion registry.
package providers

import (
	"context"

	"docanalyzer/internal/completion"
	"docanalyzer/internal/completion/claude"
	"docanalyzer/internal/completion/gemini"
	"docanalyzer/internal/completion/openai"
	"docanalyzer/internal/config"
	"docanalyzer/internal/port"
)

// RegisterAll registers the groq, openai, claude and gemini providers.
func RegisterAll() {
	completion.RegisterProvider("groq", func(cfg *config.CompletionConfig) (port.CompletionClient, error) {
		return openai.NewGroqClient(cfg), nil
	})
	completion.RegisterProvider("openai", func(cfg *config.CompletionConfig) (port.CompletionClient, error) {
		return openai.NewOpenAIClient(cfg), nil
	})
	completion.RegisterProvider("claude", func(cfg *config.CompletionConfig) (port.CompletionClient, error) {
		return claude.NewClient(cfg), nil
	})
	completion.RegisterProvider("gemini", func(cfg *config.CompletionConfig) (port.CompletionClient, error) {
		return gemini.NewClient(context.Background(), cfg)
	})
}
