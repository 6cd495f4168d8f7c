package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config is the complete mindfleet configuration
type Config struct {
	Roster      RosterConfig      `yaml:"roster" mapstructure:"roster"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Briefing    BriefingConfig    `yaml:"briefing" mapstructure:"briefing"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RosterConfig selects where the initial roster snapshot comes from
type RosterConfig struct {
	Source string `yaml:"source" mapstructure:"source"` // "mock" or a YAML/JSON file path
	Seed   uint64 `yaml:"seed" mapstructure:"seed"`     // Jitter seed for mock histories
}

// LLMConfig configures the briefing provider
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // "", openai, anthropic, ollama
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// BriefingConfig bounds the briefing request and holds its placeholder texts
type BriefingConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries           int           `yaml:"retries" mapstructure:"retries"`
	RequestsPerMinute float64       `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	PendingText       string        `yaml:"pending_text" mapstructure:"pending_text"`
	FallbackText      string        `yaml:"fallback_text" mapstructure:"fallback_text"`
	EmptyText         string        `yaml:"empty_text" mapstructure:"empty_text"`
}

// CacheConfig configures the briefing cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// OutputConfig controls logging and console output
type OutputConfig struct {
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
	LogFormat string `yaml:"log_format" mapstructure:"log_format"` // text or json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cacheDir := filepath.Join(os.TempDir(), "mindfleet-cache")
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".mindfleet", "cache")
	}

	return &Config{
		Roster: RosterConfig{
			Source: "mock",
			Seed:   1,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 600,
		},
		Briefing: BriefingConfig{
			Timeout:           20 * time.Second,
			Retries:           1,
			RequestsPerMinute: 6,
			PendingText:       "Computing strategic correlations...",
			FallbackText:      "Connecting to the AI for strategic analysis...",
			EmptyText:         "No insights could be generated at this time.",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			LogFormat: "text",
		},
	}
}
