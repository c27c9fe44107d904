package llm

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/study-scribe/internal/config"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
)

// New creates the Generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig, log logger.Logger) (Generator, error) {
	retry := RetryPolicy{
		MaxAttempts:    cfg.MaxAttempts,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
	}

	switch cfg.Provider {
	case config.ProviderGemini, "":
		log.Info(ctx, "Using Gemini model %s with %d API key(s)", cfg.Model, len(cfg.APIKeys))
		return NewGemini(ctx, cfg.APIKeys, cfg.Model, retry, log)
	case config.ProviderOpenAI:
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("openai: API key is required")
		}
		if len(cfg.APIKeys) > 1 {
			log.Warn(ctx, "OpenAI backend uses only the first of %d API keys", len(cfg.APIKeys))
		}
		log.Info(ctx, "Using OpenAI model %s", cfg.Model)
		return NewOpenAI(cfg.APIKeys[0], cfg.Model, retry, log)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s. Supported: gemini, openai", cfg.Provider)
	}
}
