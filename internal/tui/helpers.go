package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"captionfix/internal/config"
)

// formatProvidersLabel formats the providers menu option
func formatProvidersLabel(cfg *config.Config) string {
	configured := 0
	for _, pc := range cfg.Providers {
		if pc.APIKey != "" {
			configured++
		}
	}
	if configured == 0 {
		return "Providers (none configured)"
	}
	return fmt.Sprintf("Providers (%d configured)", configured)
}

// formatCorrectionLabel formats the correction menu option
func formatCorrectionLabel(cfg *config.Config) string {
	if !cfg.Correction.Enabled {
		return "Correction (disabled)"
	}
	return fmt.Sprintf("Correction (%s/%s)", cfg.Correction.Provider, cfg.Correction.Model)
}

// formatServerLabel formats the server menu option
func formatServerLabel(cfg *config.Config) string {
	return fmt.Sprintf("API Server (%s)", cfg.Server.Bind)
}

// formatHistoryLabel formats the history menu option
func formatHistoryLabel(cfg *config.Config) string {
	if !cfg.History.Enabled {
		return "History (disabled)"
	}
	return fmt.Sprintf("History (last %d)", cfg.History.Limit)
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be zero or a positive number")
	}
	return nil
}

func validateTemperature(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f > 2 {
		return fmt.Errorf("must be between 0 and 2")
	}
	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d < 0 {
		return fmt.Errorf("must be a duration like 1.5s")
	}
	return nil
}

// mustParse helpers run after form validation, so bad input cannot reach them
func mustParseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func mustParseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func mustParseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(strings.TrimSpace(s))
	return d
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	var providers []string
	for name, pc := range cfg.Providers {
		if pc.APIKey != "" {
			providers = append(providers, name)
		}
	}
	if len(providers) > 0 {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Providers:"), strings.Join(providers, ", "))
	} else {
		fmt.Printf("  %s none\n", StyleLabel.Render("Providers:"))
	}

	if cfg.Correction.Enabled {
		fmt.Printf("  %s %s (%s)\n", StyleLabel.Render("Correction:"), cfg.Correction.Provider, cfg.Correction.Model)
		fmt.Printf("  %s batch %d, context %d, %d retries\n", StyleLabel.Render("Batching:"),
			cfg.Correction.BatchSize, cfg.Correction.ContextLines, cfg.Correction.MaxRetries)
	} else {
		fmt.Printf("  %s disabled\n", StyleLabel.Render("Correction:"))
	}

	fmt.Printf("  %s %s\n", StyleLabel.Render("Server:"), cfg.Server.Bind)

	if cfg.History.Enabled {
		fmt.Printf("  %s last %d lookups\n", StyleLabel.Render("History:"), cfg.History.Limit)
	} else {
		fmt.Printf("  %s disabled\n", StyleLabel.Render("History:"))
	}

	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
