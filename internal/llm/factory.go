package llm

import (
	"context"
	"fmt"

	"prepforge/internal/platform/config"
)

// NewProvider builds the configured provider wrapped with bounded retry.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.LLMProvider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.LLMProvider, err)
	}

	retryCfg := DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.LLMMaxAttempts
	retryCfg.Timeout = cfg.LLMTimeout
	return WithRetry(base, retryCfg), nil
}
