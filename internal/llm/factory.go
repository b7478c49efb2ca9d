package llm

import (
	"context"
	"fmt"

	"github.com/Mahwas/Cognito/internal/logger"
	"github.com/Mahwas/Cognito/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// timeout, retry, rate limit and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, cfg.Provider, eventRepo, log), nil
}

// Wrap applies the middleware chain:
// caller → timeout → retry → rate limit → logging → base
func Wrap(base Provider, cfg Config, providerName string, eventRepo store.EventRepo, log *logger.Logger) Provider {
	logged := WithLogging(base, providerName, eventRepo, log)
	limited := WithRateLimit(logged, cfg.Rate)
	retried := WithRetry(limited, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout)
}
