package corrector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeOracle records every prompt it receives and answers via fn, or echoes
// the current line when fn is nil.
type fakeOracle struct {
	mu      sync.Mutex
	prompts []Prompt
	fn      func(prompt Prompt) (string, error)
}

func (f *fakeOracle) Correct(ctx context.Context, prompt Prompt) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(prompt)
	}
	return currentLine(prompt), nil
}

func (f *fakeOracle) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// currentLine recovers the line under correction from a built prompt.
func currentLine(prompt Prompt) string {
	const marker = "Line to correct:\n"
	if idx := strings.LastIndex(prompt.User, marker); idx >= 0 {
		return prompt.User[idx+len(marker):]
	}
	return prompt.User
}

// recordingSleeper captures requested delays without actually sleeping.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) sleep(d time.Duration) {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

func TestBackoffSchedule(t *testing.T) {
	oracle := &fakeOracle{fn: func(Prompt) (string, error) {
		return "", &TransportError{StatusCode: 503, Err: errors.New("unavailable")}
	}}
	sleeper := &recordingSleeper{}

	c := New(oracle, Config{
		BatchSize:      3,
		ContextLines:   3,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	})
	c.WithSleeper(sleeper.sleep)

	text, ok := c.correctSegment(context.Background(), "hello", nil)
	if ok {
		t.Fatal("expected degraded result")
	}
	if text != "hello" {
		t.Errorf("expected original text back, got %q", text)
	}
	if calls := oracle.calls(); calls != 4 {
		t.Errorf("expected exactly 4 attempts, got %d", calls)
	}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	got := sleeper.recorded()
	if len(got) != len(want) {
		t.Fatalf("expected %d backoff waits, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wait %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRetryStopsAfterFirstSuccess(t *testing.T) {
	failures := 2
	oracle := &fakeOracle{fn: func(prompt Prompt) (string, error) {
		if failures > 0 {
			failures--
			return "", ErrEmptyResponse
		}
		return "corrected", nil
	}}
	sleeper := &recordingSleeper{}

	c := New(oracle, Config{MaxRetries: 3, RetryBaseDelay: time.Second})
	c.WithSleeper(sleeper.sleep)

	text, ok := c.correctSegment(context.Background(), "original", nil)
	if !ok || text != "corrected" {
		t.Fatalf("expected corrected text, got %q (ok=%v)", text, ok)
	}
	if calls := oracle.calls(); calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if got := sleeper.recorded(); len(got) != 2 {
		t.Errorf("expected 2 backoff waits, got %v", got)
	}
}

func TestEmptySegmentSkipsOracle(t *testing.T) {
	oracle := &fakeOracle{}
	c := New(oracle, Config{})

	text, ok := c.correctSegment(context.Background(), "   ", nil)
	if !ok || text != "   " {
		t.Fatalf("expected blank text unchanged, got %q (ok=%v)", text, ok)
	}
	if oracle.calls() != 0 {
		t.Error("oracle must not be called for blank segments")
	}
}

func TestCancellationStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	oracle := &fakeOracle{fn: func(Prompt) (string, error) {
		cancel()
		return "", &TimeoutError{Err: context.DeadlineExceeded}
	}}

	c := New(oracle, Config{MaxRetries: 5, RetryBaseDelay: time.Millisecond})
	c.WithSleeper(func(time.Duration) {})

	text, ok := c.correctSegment(ctx, "hello", nil)
	if ok {
		t.Fatal("expected degraded result")
	}
	if text != "hello" {
		t.Errorf("expected original text back, got %q", text)
	}
	if calls := oracle.calls(); calls != 1 {
		t.Errorf("expected a single attempt after cancellation, got %d", calls)
	}
}
