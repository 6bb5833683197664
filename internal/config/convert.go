package config

import (
	"os"
	"path/filepath"

	"captionfix/internal/corrector"
	"captionfix/internal/transcript"
)

var providerEnvVars = map[string]string{
	"openai": "OPENAI_API_KEY",
	"groq":   "GROQ_API_KEY",
}

func (c *Config) ToFetcherConfig() transcript.Config {
	return transcript.Config{
		Python:  c.Fetcher.Python,
		Script:  c.Fetcher.Script,
		Timeout: c.Fetcher.Timeout,
	}
}

func (c *Config) ToOracleConfig() corrector.OracleConfig {
	return corrector.OracleConfig{
		Provider:    c.Correction.Provider,
		APIKey:      c.resolveAPIKeyForProvider(c.Correction.Provider),
		Model:       c.Correction.Model,
		Temperature: float32(c.Correction.Temperature),
		MaxTokens:   c.Correction.MaxTokens,
		Timeout:     c.Correction.RequestTimeout,
	}
}

func (c *Config) ToCorrectorConfig() corrector.Config {
	return corrector.Config{
		BatchSize:      c.Correction.BatchSize,
		ContextLines:   c.Correction.ContextLines,
		Temperature:    float32(c.Correction.Temperature),
		MaxTokens:      c.Correction.MaxTokens,
		BatchDelay:     c.Correction.BatchDelay,
		MaxRetries:     c.Correction.MaxRetries,
		RetryBaseDelay: c.Correction.RetryBaseDelay,
	}
}

// HistoryPath resolves the history database location, defaulting to the
// user cache directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "captionfix", "history.db"), nil
}

// IsCorrectionEnabled returns true if AI correction is enabled and has a
// usable provider key.
func (c *Config) IsCorrectionEnabled() bool {
	return c.Correction.Enabled && c.resolveAPIKeyForProvider(c.Correction.Provider) != ""
}

// resolveAPIKeyForProvider returns the API key for a provider from the
// config file or the matching environment variable.
func (c *Config) resolveAPIKeyForProvider(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}
	if envVar, ok := providerEnvVars[providerName]; ok {
		return os.Getenv(envVar)
	}
	return ""
}
