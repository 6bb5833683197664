package tui

import (
	"fmt"
	"net"
	"strings"

	"github.com/charmbracelet/huh"

	"captionfix/internal/config"
)

// editServer edits the HTTP API settings
func editServer(cfg *config.Config) error {
	bind := cfg.Server.Bind
	origins := strings.Join(cfg.Server.AllowedOrigins, ", ")
	rateLimit := fmt.Sprintf("%d", cfg.Server.RateLimitPerMinute)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bind Address").
				Description("host:port the API listens on").
				Value(&bind).
				Validate(func(s string) error {
					if _, _, err := net.SplitHostPort(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("must be host:port")
					}
					return nil
				}),
			huh.NewInput().
				Title("Allowed Origins").
				Description("Comma-separated CORS origins, * for any").
				Value(&origins),
			huh.NewInput().
				Title("Rate Limit").
				Description("Requests per minute per client, 0 disables").
				Value(&rateLimit).
				Validate(validateNonNegativeInt),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Server.Bind = strings.TrimSpace(bind)
	cfg.Server.AllowedOrigins = splitOrigins(origins)
	cfg.Server.RateLimitPerMinute = mustParseInt(rateLimit)
	return nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// editHistory edits the lookup-history settings
func editHistory(cfg *config.Config) error {
	enabled := cfg.History.Enabled
	limit := fmt.Sprintf("%d", cfg.History.Limit)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Keep Lookup History?").
				Description("Stores recent lookups in a local database").
				Value(&enabled),
			huh.NewInput().
				Title("History Limit").
				Description("Entries kept before the oldest are pruned").
				Value(&limit).
				Validate(validatePositiveInt),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.History.Enabled = enabled
	cfg.History.Limit = mustParseInt(limit)
	return nil
}

// editFetcher edits the transcript subprocess settings
func editFetcher(cfg *config.Config) error {
	python := cfg.Fetcher.Python
	script := cfg.Fetcher.Script
	timeout := cfg.Fetcher.Timeout.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Python Interpreter").
				Description("Interpreter used to run the fetch helper").
				Value(&python).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("interpreter is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Fetch Script").
				Description("Path to fetch_transcript.py").
				Value(&script).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("script path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Fetch Timeout").
				Description("Per-fetch deadline, e.g. 30s").
				Value(&timeout).
				Validate(validateDuration),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Fetcher.Python = strings.TrimSpace(python)
	cfg.Fetcher.Script = strings.TrimSpace(script)
	cfg.Fetcher.Timeout = mustParseDuration(timeout)
	return nil
}
