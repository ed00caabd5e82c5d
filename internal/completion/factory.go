package completion

import (
	"fmt"
	"sort"
	"strings"

	"docanalyzer/internal/config"
	"docanalyzer/internal/domain"
	"docanalyzer/internal/port"
)

// ProviderFactory creates a CompletionClient from the completion config.
type ProviderFactory func(cfg *config.CompletionConfig) (port.CompletionClient, error)

// registry of provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewClient creates the CompletionClient for cfg.Provider. It fails when the
// provider is unknown or no API key is configured.
func NewClient(cfg *config.CompletionConfig) (port.CompletionClient, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown completion provider: %q (available: %s)", cfg.Provider, strings.Join(Providers(), ", "))
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, domain.ErrMissingAPIKey)
	}
	return factory(cfg)
}
