package corrector

import (
	"context"
	"fmt"
	"time"
)

// Oracle performs one correction call for a built prompt. Implementations
// do not retry; retry policy lives in the scheduler.
type Oracle interface {
	Correct(ctx context.Context, prompt Prompt) (string, error)
}

// OracleConfig holds the settings for a correction oracle adapter.
type OracleConfig struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// NewOracle creates a correction oracle based on the provider.
func NewOracle(cfg OracleConfig) (Oracle, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIOracle(cfg), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqOracle(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported correction provider: %s", cfg.Provider)
	}
}
