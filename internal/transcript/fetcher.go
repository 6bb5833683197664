package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// ErrUpstreamUnavailable indicates the transcript source failed for a video,
// e.g. captions are disabled or the video does not exist. The correction
// pipeline never starts when this is returned.
var ErrUpstreamUnavailable = errors.New("transcript source unavailable")

// Fetcher retrieves the ordered segment sequence for a video.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]Segment, error)
}

// Config holds the settings for the subprocess-backed fetcher.
type Config struct {
	Python  string        // python interpreter, e.g. "python3"
	Script  string        // path to the fetch helper script
	Timeout time.Duration // per-fetch deadline
}

// ScriptFetcher shells out to the bundled Python helper, which talks to the
// YouTube transcript API and prints a JSON envelope on stdout.
type ScriptFetcher struct {
	cfg    Config
	runner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewScriptFetcher creates a fetcher running the configured helper script.
func NewScriptFetcher(cfg Config) *ScriptFetcher {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ScriptFetcher{cfg: cfg}
}

// WithRunner sets a custom command runner (for testing).
func (f *ScriptFetcher) WithRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	f.runner = runner
}

// fetchEnvelope mirrors the helper script's stdout contract.
type fetchEnvelope struct {
	Success    bool      `json:"success"`
	Transcript []Segment `json:"transcript"`
	Error      string    `json:"error"`
}

func (f *ScriptFetcher) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	if _, err := ExtractVideoID(videoID); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	start := time.Now()
	output, runErr := f.run(fetchCtx, f.cfg.Python, f.cfg.Script, videoID)

	// The helper prints its JSON envelope even when it exits non-zero, so
	// decode first and prefer the reported error over the exec error.
	var envelope fetchEnvelope
	decodeErr := json.Unmarshal(bytesTrim(output), &envelope)

	if decodeErr == nil && !envelope.Success {
		reason := envelope.Error
		if reason == "" {
			reason = "no transcript returned"
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, reason)
	}
	if runErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, runErr)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: malformed helper output: %v", ErrUpstreamUnavailable, decodeErr)
	}

	log.Printf("Fetcher: fetched %d segments for %s in %v", len(envelope.Transcript), videoID, time.Since(start))
	return envelope.Transcript, nil
}

func (f *ScriptFetcher) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if f.runner != nil {
		return f.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(output) > 0 {
			// Non-zero exit with a JSON envelope on stdout; let the caller
			// decode the reported reason.
			return output, err
		}
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

func bytesTrim(b []byte) []byte {
	return []byte(strings.TrimSpace(string(b)))
}
