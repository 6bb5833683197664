package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestScriptFetcherFetch(t *testing.T) {
	fetcher := NewScriptFetcher(Config{Script: "fetch_transcript.py", Timeout: time.Second})

	var gotName string
	var gotArgs []string
	fetcher.WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte(`{"success": true, "transcript": [
			{"text": "hello", "duration": 1200, "offset": 0},
			{"text": "world", "duration": 900, "offset": 1200}
		]}`), nil
	})

	segments, err := fetcher.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if gotName != "python3" {
		t.Errorf("expected python3 interpreter, got %q", gotName)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "fetch_transcript.py" || gotArgs[1] != "dQw4w9WgXcQ" {
		t.Errorf("unexpected args: %v", gotArgs)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "hello" || segments[0].Duration != 1200 || segments[0].Offset != 0 {
		t.Errorf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Text != "world" || segments[1].Offset != 1200 {
		t.Errorf("unexpected second segment: %+v", segments[1])
	}
}

func TestScriptFetcherReportsUpstreamFailure(t *testing.T) {
	fetcher := NewScriptFetcher(Config{Script: "fetch_transcript.py"})
	fetcher.WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(`{"success": false, "error": "Subtitles are disabled for this video"}`),
			errors.New("exit status 1")
	})

	_, err := fetcher.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "Subtitles are disabled") {
		t.Errorf("expected helper error message to surface, got %q", got)
	}
}

func TestScriptFetcherExecFailure(t *testing.T) {
	fetcher := NewScriptFetcher(Config{Script: "fetch_transcript.py"})
	fetcher.WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, fmt.Errorf("python3: executable file not found")
	})

	_, err := fetcher.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestScriptFetcherMalformedOutput(t *testing.T) {
	fetcher := NewScriptFetcher(Config{Script: "fetch_transcript.py"})
	fetcher.WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("Traceback (most recent call last):"), nil
	})

	_, err := fetcher.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestScriptFetcherRejectsInvalidID(t *testing.T) {
	fetcher := NewScriptFetcher(Config{Script: "fetch_transcript.py"})
	fetcher.WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		t.Fatal("runner must not be called for invalid IDs")
		return nil, nil
	})

	_, err := fetcher.Fetch(context.Background(), "bad id")
	if !errors.Is(err, ErrInvalidVideoID) {
		t.Fatalf("expected ErrInvalidVideoID, got %v", err)
	}
}
