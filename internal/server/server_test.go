package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"captionfix/internal/config"
	"captionfix/internal/corrector"
	"captionfix/internal/history"
	"captionfix/internal/pipeline"
	"captionfix/internal/transcript"
)

type fakeLookuper struct {
	report *pipeline.Report
	err    error

	gotURL     string
	gotCorrect bool
}

func (f *fakeLookuper) Lookup(ctx context.Context, rawURL string, correct bool) (*pipeline.Report, error) {
	f.gotURL = rawURL
	f.gotCorrect = correct
	return f.report, f.err
}

func testServer(t *testing.T, service Lookuper, store *history.Store) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.RateLimitPerMinute = 0 // unlimited for handler tests
	return New(config.NewManager(cfg), service, store)
}

func TestHandleTranscript(t *testing.T) {
	service := &fakeLookuper{report: &pipeline.Report{
		VideoID:   "dQw4w9WgXcQ",
		Corrected: true,
		Results: []corrector.Result{
			{Segment: transcript.Segment{Text: "HELLO"}, Original: "hello", Corrected: "HELLO", HasError: true},
		},
		Stats: corrector.Stats{Segments: 1, Changed: 1},
	}}
	srv := testServer(t, service, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/transcript",
		strings.NewReader(`{"url": "https://youtu.be/dQw4w9WgXcQ"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if service.gotURL != "https://youtu.be/dQw4w9WgXcQ" || !service.gotCorrect {
		t.Errorf("lookup called with %q correct=%v", service.gotURL, service.gotCorrect)
	}

	var report pipeline.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.VideoID != "dQw4w9WgXcQ" || len(report.Results) != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if !report.Results[0].HasError || report.Results[0].Original != "hello" {
		t.Errorf("unexpected result: %+v", report.Results[0])
	}
}

func TestHandleTranscriptCorrectFlag(t *testing.T) {
	service := &fakeLookuper{report: &pipeline.Report{}}
	srv := testServer(t, service, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/transcript",
		strings.NewReader(`{"url": "dQw4w9WgXcQ", "correct": false}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if service.gotCorrect {
		t.Error("expected correct=false to be passed through")
	}
}

func TestHandleTranscriptErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "invalid body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing url",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid video id",
			body:       `{"url": "nope"}`,
			serviceErr: transcript.ErrInvalidVideoID,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "upstream unavailable",
			body:       `{"url": "dQw4w9WgXcQ"}`,
			serviceErr: transcript.ErrUpstreamUnavailable,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := testServer(t, &fakeLookuper{err: tc.serviceErr}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/transcript", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tc.wantStatus, rec.Body)
			}
		})
	}
}

func TestHandleTranscriptMethodNotAllowed(t *testing.T) {
	srv := testServer(t, &fakeLookuper{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), 10)
	if err != nil {
		t.Fatalf("history.Open error: %v", err)
	}
	defer store.Close()

	if err := store.Record(context.Background(), history.Entry{VideoID: "dQw4w9WgXcQ", URL: "u"}); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	srv := testServer(t, &fakeLookuper{}, store)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var payload struct {
		History []history.Entry `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.History) != 1 || payload.History[0].VideoID != "dQw4w9WgXcQ" {
		t.Errorf("unexpected history: %+v", payload.History)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.History) != 0 {
		t.Errorf("expected cleared history, got %+v", payload.History)
	}
}

func TestHandleHistoryDisabled(t *testing.T) {
	srv := testServer(t, &fakeLookuper{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := testServer(t, &fakeLookuper{}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := testServer(t, &fakeLookuper{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/transcript", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := newRateLimiter()
	current := time.Unix(1000, 0)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !limiter.allow("1.2.3.4", 3) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.allow("1.2.3.4", 3) {
		t.Error("4th request in window should be rejected")
	}
	if !limiter.allow("5.6.7.8", 3) {
		t.Error("other clients must not share the window")
	}

	current = current.Add(61 * time.Second)
	if !limiter.allow("1.2.3.4", 3) {
		t.Error("new window should allow requests again")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.RateLimitPerMinute = 1
	srv := New(config.NewManager(cfg), &fakeLookuper{}, nil)

	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
}
