package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/D-dracula/merchantlens/internal/llm"
)

// createLLMClient builds the provider client from config. Returns nil (and
// no error) when no API key is configured; the pipeline then runs entirely
// on deterministic fallbacks.
func createLLMClient() (llm.Client, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai"
	}

	cfg := llm.Config{
		Provider:      provider,
		Model:         viper.GetString("llm.model"),
		FallbackModel: viper.GetString("llm.fallback_model"),
		MaxRetries:    viper.GetInt("llm.max_retries"),
		RetryDelay:    viper.GetDuration("llm.retry_delay"),
		Temperature:   viper.GetFloat64("llm.temperature"),
		MaxTokens:     viper.GetInt("llm.max_tokens"),
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	switch provider {
	case "openai":
		cfg.APIKey = viper.GetString("llm.openai_api_key")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic":
		cfg.APIKey = viper.GetString("llm.anthropic_api_key")
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	if cfg.APIKey == "" {
		slog.Warn("no AI provider key configured, using deterministic fallbacks only",
			"provider", provider)
		return nil, nil
	}
	return llm.NewClient(cfg)
}
