// Package pipeline ties the transcript fetcher, the correction pipeline and
// the history store together into the lookup flow exposed by the HTTP API
// and the CLI.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"captionfix/internal/config"
	"captionfix/internal/corrector"
	"captionfix/internal/history"
	"captionfix/internal/transcript"
)

// Report is the outcome of one transcript lookup.
type Report struct {
	VideoID   string             `json:"videoId"`
	Corrected bool               `json:"corrected"`
	Results   []corrector.Result `json:"transcript"`
	Stats     corrector.Stats    `json:"stats"`
}

// Service runs transcript lookups with optional AI correction.
type Service struct {
	manager *config.Manager
	store   *history.Store // nil when history is disabled

	// Overridable constructors for testing.
	newFetcher func(cfg transcript.Config) transcript.Fetcher
	newOracle  func(cfg corrector.OracleConfig) (corrector.Oracle, error)
}

// New creates a lookup service. store may be nil to disable history.
func New(manager *config.Manager, store *history.Store) *Service {
	return &Service{
		manager: manager,
		store:   store,
		newFetcher: func(cfg transcript.Config) transcript.Fetcher {
			return transcript.NewScriptFetcher(cfg)
		},
		newOracle: corrector.NewOracle,
	}
}

// Lookup fetches the transcript for a video URL or ID and, when requested
// and configured, runs it through the correction pipeline. Every input
// segment yields an output result regardless of per-segment failures.
func (s *Service) Lookup(ctx context.Context, rawURL string, correct bool) (*Report, error) {
	videoID, err := transcript.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	cfg := s.manager.GetConfig()

	fetcher := s.newFetcher(cfg.ToFetcherConfig())
	segments, err := fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	report := &Report{VideoID: videoID}

	if correct && cfg.IsCorrectionEnabled() {
		oracle, err := s.newOracle(cfg.ToOracleConfig())
		if err != nil {
			return nil, fmt.Errorf("create correction oracle: %w", err)
		}

		results, stats, err := corrector.New(oracle, cfg.ToCorrectorConfig()).Run(ctx, segments)
		if err != nil {
			return nil, err
		}
		report.Corrected = true
		report.Results = results
		report.Stats = stats
	} else {
		report.Results = passthrough(segments)
		report.Stats = corrector.Stats{Segments: len(segments)}
	}

	s.recordLookup(ctx, rawURL, report)
	return report, nil
}

// passthrough wraps raw segments as unchanged results so the response shape
// is identical with and without correction.
func passthrough(segments []transcript.Segment) []corrector.Result {
	results := make([]corrector.Result, len(segments))
	for i, segment := range segments {
		results[i] = corrector.Result{Segment: segment}
	}
	return results
}

func (s *Service) recordLookup(ctx context.Context, rawURL string, report *Report) {
	if s.store == nil {
		return
	}
	err := s.store.Record(ctx, history.Entry{
		VideoID:  report.VideoID,
		URL:      rawURL,
		Segments: report.Stats.Segments,
		Changed:  report.Stats.Changed,
		Degraded: report.Stats.Degraded,
	})
	if err != nil {
		// History is best effort; a failed write never fails the lookup.
		log.Printf("Pipeline: failed to record lookup: %v", err)
	}
}
