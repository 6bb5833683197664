package config

import "time"

type Config struct {
	Server     ServerConfig              `toml:"server"`
	Fetcher    FetcherConfig             `toml:"fetcher"`
	Correction CorrectionConfig          `toml:"correction"`
	History    HistoryConfig             `toml:"history"`
	Providers  map[string]ProviderConfig `toml:"providers"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Bind               string   `toml:"bind"`
	AllowedOrigins     []string `toml:"allowed_origins"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute"`
}

// FetcherConfig holds the transcript subprocess settings.
type FetcherConfig struct {
	Python  string        `toml:"python"`
	Script  string        `toml:"script"`
	Timeout time.Duration `toml:"timeout"`
}

// CorrectionConfig configures the AI correction pipeline.
type CorrectionConfig struct {
	Enabled        bool          `toml:"enabled"`
	Provider       string        `toml:"provider"`
	Model          string        `toml:"model"`
	Temperature    float64       `toml:"temperature"`
	MaxTokens      int           `toml:"max_tokens"`
	BatchSize      int           `toml:"batch_size"`
	ContextLines   int           `toml:"context_lines"`
	BatchDelay     time.Duration `toml:"batch_delay"`
	MaxRetries     int           `toml:"max_retries"`
	RetryBaseDelay time.Duration `toml:"retry_base_delay"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// HistoryConfig controls the lookup-history store.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // empty = <user cache dir>/captionfix/history.db
	Limit   int    `toml:"limit"`
}

// ProviderConfig holds the API key for a provider.
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}
