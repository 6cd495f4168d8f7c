package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/mindfleet/internal/model"
)

// NewProvider creates a new briefing provider based on configuration.
// An empty provider name disables briefings and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	var (
		provider Provider
		err      error
	)

	switch strings.ToLower(config.Provider) {
	case "openai":
		provider, err = asProvider(NewOpenAIProvider(config))

	case "anthropic", "claude":
		provider, err = asProvider(NewAnthropicProvider(config))

	case "ollama":
		provider, err = asProvider(NewOllamaProvider(config))

	case "":
		// No provider configured - briefings fall back to static text
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}

	if err != nil {
		return nil, err
	}
	return provider, nil
}

// asProvider keeps a failed constructor from yielding a non-nil interface around a nil pointer
func asProvider[P Provider](p P, err error) (Provider, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}
}

// WithEnvDefaults fills the API key and base URL from provider environment variables
func WithEnvDefaults(config Config) Config {
	switch strings.ToLower(config.Provider) {
	case "openai":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if config.APIKey == "" {
			config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if config.BaseURL == "" {
			config.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	return config
}
