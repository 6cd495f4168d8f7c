package llm

import (
	"strings"
	"testing"

	"github.com/ppiankov/mindfleet/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Risk: 12.5%. Alerts: 1. Incoherence: 0%. Cohesion: 40.")

	if !strings.Contains(prompt, "Risk: 12.5%. Alerts: 1.") {
		t.Error("Expected prompt to embed the data summary")
	}
	if !strings.Contains(prompt, "3 key points") {
		t.Error("Expected prompt to ask for three key points")
	}
	if !strings.Contains(prompt, "plain text") {
		t.Error("Expected prompt to ask for plain text")
	}
}

func TestPromptFor_CustomPrompt(t *testing.T) {
	req := SummarizeRequest{DataSummary: "x", Prompt: "custom"}
	if promptFor(req) != "custom" {
		t.Error("Expected custom prompt to win")
	}
	if systemFor(req) != SystemPrompt {
		t.Error("Expected default system prompt")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil || p != nil {
		t.Errorf("Expected disabled provider, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "gemini"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "openai"})
	if err == nil {
		t.Error("Expected error for missing OpenAI key")
	}
	if p != nil {
		t.Error("Expected a nil interface when construction fails")
	}

	p, err = NewProvider(Config{Provider: "Claude", APIKey: "k"})
	if err != nil || p == nil || p.Name() != "anthropic" {
		t.Errorf("Expected anthropic provider, got %v, %v", p, err)
	}

	p, err = NewProvider(Config{Provider: "ollama"})
	if err != nil || p.Name() != "ollama" {
		t.Errorf("Expected ollama provider, got %v, %v", p, err)
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{
		Provider:   "openai",
		Model:      "gpt-4o-mini",
		APIKey:     "k",
		Timeout:    10,
		MaxTokens:  300,
		HTTPSProxy: "http://proxy:8080",
	})

	if cfg.Provider != "openai" || cfg.Model != "gpt-4o-mini" || cfg.MaxTokens != 300 || cfg.HTTPSProxy != "http://proxy:8080" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestWithEnvDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	if cfg := WithEnvDefaults(Config{Provider: "openai"}); cfg.APIKey != "env-key" {
		t.Errorf("Expected env key, got %q", cfg.APIKey)
	}
	if cfg := WithEnvDefaults(Config{Provider: "openai", APIKey: "explicit"}); cfg.APIKey != "explicit" {
		t.Errorf("Expected explicit key to win, got %q", cfg.APIKey)
	}
	if cfg := WithEnvDefaults(Config{Provider: "ollama"}); cfg.BaseURL != "http://ollama:11434" {
		t.Errorf("Expected env base URL, got %q", cfg.BaseURL)
	}
}
