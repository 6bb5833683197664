package config

import "fmt"

func (c *Config) Validate() error {
	if c.Server.Bind == "" {
		return fmt.Errorf("invalid server.bind: empty")
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("invalid server.rate_limit_per_minute: %d", c.Server.RateLimitPerMinute)
	}

	if c.Fetcher.Python == "" {
		return fmt.Errorf("invalid fetcher.python: empty")
	}
	if c.Fetcher.Script == "" {
		return fmt.Errorf("invalid fetcher.script: empty")
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("invalid fetcher.timeout: %v", c.Fetcher.Timeout)
	}

	if c.Correction.Enabled {
		validProviders := map[string]bool{"openai": true, "groq": true}
		if !validProviders[c.Correction.Provider] {
			return fmt.Errorf("invalid correction.provider: %s (must be openai or groq)", c.Correction.Provider)
		}

		apiKey := c.resolveAPIKeyForProvider(c.Correction.Provider)
		if apiKey == "" {
			switch c.Correction.Provider {
			case "openai":
				return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
			case "groq":
				return fmt.Errorf("Groq API key required: not found in config (providers.groq.api_key) or environment variable (GROQ_API_KEY)")
			}
		}

		if c.Correction.Temperature < 0 || c.Correction.Temperature > 2 {
			return fmt.Errorf("invalid correction.temperature: %v (must be between 0 and 2)", c.Correction.Temperature)
		}
		if c.Correction.MaxTokens <= 0 {
			return fmt.Errorf("invalid correction.max_tokens: %d", c.Correction.MaxTokens)
		}
		if c.Correction.BatchSize <= 0 {
			return fmt.Errorf("invalid correction.batch_size: %d", c.Correction.BatchSize)
		}
		if c.Correction.ContextLines < 0 {
			return fmt.Errorf("invalid correction.context_lines: %d", c.Correction.ContextLines)
		}
		if c.Correction.BatchDelay < 0 {
			return fmt.Errorf("invalid correction.batch_delay: %v", c.Correction.BatchDelay)
		}
		if c.Correction.MaxRetries < 0 {
			return fmt.Errorf("invalid correction.max_retries: %d", c.Correction.MaxRetries)
		}
		if c.Correction.RetryBaseDelay <= 0 {
			return fmt.Errorf("invalid correction.retry_base_delay: %v", c.Correction.RetryBaseDelay)
		}
		if c.Correction.RequestTimeout <= 0 {
			return fmt.Errorf("invalid correction.request_timeout: %v", c.Correction.RequestTimeout)
		}
	}

	if c.History.Enabled && c.History.Limit <= 0 {
		return fmt.Errorf("invalid history.limit: %d", c.History.Limit)
	}

	return nil
}
