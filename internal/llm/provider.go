package llm

import (
	"context"
	"fmt"
)

// Provider defines the interface for briefing providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize turns a fleet data summary into executive prose
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for a briefing
type SummarizeRequest struct {
	// DataSummary is the short metrics line, e.g. "Risk: 39.9%. Alerts: 0. ..."
	DataSummary string

	// Prompt is an optional custom prompt (if empty, BuildPrompt is used)
	Prompt string

	// System is an optional system instruction for providers that support one
	System string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the provider's briefing output
type SummarizeResponse struct {
	// Summary is the generated briefing text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

// SystemPrompt frames the provider as an HR well-being consultant
const SystemPrompt = "You are an expert consultant in human resources and workplace well-being."

// BuildPrompt constructs the briefing prompt for a data summary
func BuildPrompt(dataSummary string) string {
	return fmt.Sprintf(`Analyze the current company data: %s

Provide a short executive summary with exactly 3 key points, in a professional and direct tone, addressed to the CEO.
Do not use markdown formatting. Use plain text with line breaks only.`, dataSummary)
}

// promptFor returns the request prompt, falling back to BuildPrompt
func promptFor(req SummarizeRequest) string {
	if req.Prompt != "" {
		return req.Prompt
	}
	return BuildPrompt(req.DataSummary)
}

// systemFor returns the request system instruction or the default one
func systemFor(req SummarizeRequest) string {
	if req.System != "" {
		return req.System
	}
	return SystemPrompt
}
