package llm

import "github.com/nguyentantai21042004/study-scribe/internal/config"

func configFor(provider, model string, keys ...string) config.LLMConfig {
	return config.LLMConfig{
		Provider:    provider,
		Model:       model,
		MaxAttempts: 1,
		APIKeys:     keys,
	}
}
