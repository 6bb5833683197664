package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"captionfix/internal/config"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// AllProviders is the list of supported correction providers
var AllProviders = []string{"openai", "groq"}

// providerDisplayNames maps provider IDs to human-readable names
var providerDisplayNames = map[string]string{
	"openai": "OpenAI",
	"groq":   "Groq",
}

// ConfigSection represents a configuration section
type ConfigSection string

const (
	SectionProviders   ConfigSection = "providers"
	SectionCorrection  ConfigSection = "correction"
	SectionServer      ConfigSection = "server"
	SectionHistory     ConfigSection = "history"
	SectionFetcher     ConfigSection = "fetcher"
	SectionSaveExit    ConfigSection = "save_exit"
	SectionDiscardExit ConfigSection = "discard_exit"
)

// Run starts the TUI configuration wizard
func Run(existingConfig *config.Config) (*ConfigureResult, error) {
	cfg := existingConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if !hasUserChanges(cfg) {
		if err := runOnboarding(cfg); err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}
	}

	return runMenu(cfg)
}

// hasUserChanges detects if config has user modifications
func hasUserChanges(cfg *config.Config) bool {
	if len(cfg.Providers) > 0 {
		return true
	}
	return cfg.Correction.Enabled
}

// runOnboarding walks a fresh install through the minimum useful setup:
// a provider key and the correction toggle. Everything else keeps defaults.
func runOnboarding(cfg *config.Config) error {
	clearScreen()
	fmt.Println(Logo())
	fmt.Println()
	fmt.Println(StyleMuted.Render("Welcome! Let's set up transcript correction."))
	fmt.Println()

	if err := editProviders(cfg, true); err != nil {
		return err
	}
	return editCorrection(cfg)
}

// runMenu runs the menu-based edit flow
func runMenu(cfg *config.Config) (*ConfigureResult, error) {
	for {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		section, err := selectSection(cfg)
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch section {
		case SectionSaveExit:
			confirmed, err := showSummary(cfg)
			if err != nil {
				return &ConfigureResult{Cancelled: true}, nil
			}
			if confirmed {
				return &ConfigureResult{Config: cfg, Cancelled: false}, nil
			}

		case SectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case SectionProviders:
			if err := editProviders(cfg, false); err != nil {
				continue
			}

		case SectionCorrection:
			if err := editCorrection(cfg); err != nil {
				continue
			}

		case SectionServer:
			if err := editServer(cfg); err != nil {
				continue
			}

		case SectionHistory:
			if err := editHistory(cfg); err != nil {
				continue
			}

		case SectionFetcher:
			if err := editFetcher(cfg); err != nil {
				continue
			}
		}
	}
}

func selectSection(cfg *config.Config) (ConfigSection, error) {
	options := []huh.Option[ConfigSection]{
		huh.NewOption(formatProvidersLabel(cfg), SectionProviders),
		huh.NewOption(formatCorrectionLabel(cfg), SectionCorrection),
		huh.NewOption(formatServerLabel(cfg), SectionServer),
		huh.NewOption(formatHistoryLabel(cfg), SectionHistory),
		huh.NewOption("Transcript Fetcher", SectionFetcher),
		huh.NewOption("Save & Exit", SectionSaveExit),
		huh.NewOption("Discard & Exit", SectionDiscardExit),
	}

	var selected ConfigSection
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ConfigSection]().
				Title("Configuration Menu").
				Description("↑/↓ navigate • enter select • esc cancel").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

// clearScreen clears the terminal screen
func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}

func getTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}
