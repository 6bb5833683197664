package corrector

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"captionfix/internal/transcript"
)

// Config holds the pipeline tunables. Zero values fall back to defaults so
// tests can shrink batch sizes and delays without spelling out everything.
type Config struct {
	BatchSize      int           // segments corrected concurrently per batch
	ContextLines   int           // prior corrected lines included per prompt
	Temperature    float32       // oracle decoding temperature
	MaxTokens      int           // oracle output bound
	BatchDelay     time.Duration // pause between batches
	MaxRetries     int           // retries per segment after the first attempt
	RetryBaseDelay time.Duration // backoff base, doubled per attempt
}

// DefaultConfig returns the production pipeline settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:      3,
		ContextLines:   3,
		Temperature:    0.2,
		MaxTokens:      250,
		BatchDelay:     1500 * time.Millisecond,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// Stats summarizes one pipeline run. Degraded counts segments whose
// correction failed after all retries and kept their original text; those
// are indistinguishable from unchanged segments in the results themselves.
type Stats struct {
	Segments int `json:"segments"`
	Changed  int `json:"changed"`
	Degraded int `json:"degraded"`
}

// Corrector drives the batched correction pipeline over an oracle.
type Corrector struct {
	cfg     Config
	oracle  Oracle
	sleeper func(time.Duration)
}

// New creates a pipeline driver. Non-positive config fields are replaced
// with defaults.
func New(oracle Oracle, cfg Config) *Corrector {
	defaults := DefaultConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.ContextLines <= 0 {
		cfg.ContextLines = defaults.ContextLines
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaults.RetryBaseDelay
	}
	return &Corrector{cfg: cfg, oracle: oracle}
}

// WithSleeper overrides how delays are performed (useful for tests).
func (c *Corrector) WithSleeper(sleeper func(time.Duration)) {
	c.sleeper = sleeper
}

// Run corrects the full segment sequence and returns one result per input
// segment, in input order. Segments are processed in batches of
// cfg.BatchSize: the units of a batch run concurrently and share an
// identical context window snapshotted before dispatch, so siblings never
// see each other's output. Per-segment failures degrade to the original
// text; only malformed input fails the run.
func (c *Corrector) Run(ctx context.Context, segments []transcript.Segment) ([]Result, Stats, error) {
	if segments == nil {
		return nil, Stats{}, ErrInvalidInput
	}

	results := make([]Result, len(segments))
	completed := make([]string, 0, len(segments))
	stats := Stats{Segments: len(segments)}

	batches := 0
	start := time.Now()
	for lo := 0; lo < len(segments); lo += c.cfg.BatchSize {
		hi := lo + c.cfg.BatchSize
		if hi > len(segments) {
			hi = len(segments)
		}
		batches++

		// Context is fixed before the batch's concurrent calls are
		// dispatched; every unit gets the same immutable snapshot.
		window := contextWindow(completed, c.cfg.ContextLines)

		corrected := make([]string, hi-lo)
		degraded := make([]bool, hi-lo)

		g, gctx := errgroup.WithContext(ctx)
		for i := lo; i < hi; i++ {
			g.Go(func() error {
				text, ok := c.correctSegment(gctx, segments[i].Text, window)
				corrected[i-lo] = text
				degraded[i-lo] = !ok
				return nil
			})
		}
		// Units never return errors; they degrade instead.
		_ = g.Wait()

		// Fan-in complete: mutate the log and results strictly between
		// batches, in original segment order.
		for i := lo; i < hi; i++ {
			results[i] = annotate(segments[i], corrected[i-lo])
			if results[i].HasError {
				stats.Changed++
			}
			if degraded[i-lo] {
				stats.Degraded++
			}
			completed = append(completed, corrected[i-lo])
		}

		if hi < len(segments) && c.cfg.BatchDelay > 0 {
			if err := c.sleep(ctx, c.cfg.BatchDelay); err != nil {
				// Caller abandoned the run; remaining batches degrade
				// quickly since their oracle calls fail fast.
				continue
			}
		}
	}

	log.Printf("Corrector: run complete: %d segments, %d batches, %d changed, %d degraded in %v",
		stats.Segments, batches, stats.Changed, stats.Degraded, time.Since(start))
	return results, stats, nil
}

// contextWindow copies the newest n entries of the completed-texts log.
// The copy keeps the snapshot immune to later appends.
func contextWindow(completed []string, n int) []string {
	if n <= 0 || len(completed) == 0 {
		return nil
	}
	if len(completed) > n {
		completed = completed[len(completed)-n:]
	}
	window := make([]string, len(completed))
	copy(window, completed)
	return window
}
