package llm

import (
	"fmt"
	"strings"
)

// NewClient creates a provider client from configuration. The returned
// client already carries the retry policy and fallback-model substitution,
// so callers issue single calls and let the wrapper handle transient
// provider failures.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return newRetryClient(client, cfg), nil
}
