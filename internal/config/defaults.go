package config

import "time"

// DefaultConfig returns the initial configuration used before the user has
// run captionfix configure.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Bind:               "127.0.0.1:8105",
			AllowedOrigins:     []string{"*"},
			RateLimitPerMinute: 30,
		},
		Fetcher: FetcherConfig{
			Python:  "python3",
			Script:  "scripts/fetch_transcript.py",
			Timeout: 30 * time.Second,
		},
		Correction: CorrectionConfig{
			Enabled:        false,
			Provider:       "openai",
			Model:          "",
			Temperature:    0.2,
			MaxTokens:      250,
			BatchSize:      3,
			ContextLines:   3,
			BatchDelay:     1500 * time.Millisecond,
			MaxRetries:     3,
			RetryBaseDelay: time.Second,
			RequestTimeout: 30 * time.Second,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   50,
		},
		Providers: make(map[string]ProviderConfig),
	}
}
