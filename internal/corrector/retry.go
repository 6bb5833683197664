package corrector

import (
	"context"
	"log"
	"strings"
	"time"
)

// correctSegment runs one correction unit: prompt build, oracle call, and
// bounded retry with exponential backoff. It returns the corrected text and
// true on success, or the original text and false when every attempt failed
// (the degraded-but-safe fallback). A single segment's failure must never
// abort the whole transcript's correction, so errors stop here.
func (c *Corrector) correctSegment(ctx context.Context, text string, contextLines []string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return text, true
	}

	prompt := BuildPrompt(text, contextLines)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		corrected, err := c.oracle.Correct(ctx, prompt)
		if err == nil {
			return corrected, true
		}
		lastErr = err

		if attempt < c.cfg.MaxRetries {
			delay := c.cfg.RetryBaseDelay * (1 << attempt)
			log.Printf("Corrector: attempt %d failed (%v), retrying in %v", attempt+1, err, delay)
			if err := c.sleep(ctx, delay); err != nil {
				break
			}
		}
	}

	log.Printf("Corrector: correction failed after %d attempts, keeping original text: %v",
		c.cfg.MaxRetries+1, lastErr)
	return text, false
}

// sleep waits for the given delay, honoring context cancellation. The
// injectable sleeper keeps retry and throttle tests instant.
func (c *Corrector) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
