package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"captionfix/internal/config"
)

// editCorrection handles the correction section edit
func editCorrection(cfg *config.Config) error {
	enable := cfg.Correction.Enabled

	enableDesc := "AI correction fixes transcription errors, grammar, and punctuation in fetched captions"
	if cfg.Correction.Enabled {
		enableDesc = fmt.Sprintf("Currently: enabled (%s/%s). %s", cfg.Correction.Provider, cfg.Correction.Model, enableDesc)
	} else {
		enableDesc = "Currently: disabled. " + enableDesc
	}

	enableForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable AI Correction? (Recommended)").
				Description(enableDesc).
				Affirmative("Yes (Recommended)").
				Negative("No").
				Value(&enable),
		),
	).WithTheme(getTheme())

	if err := enableForm.Run(); err != nil {
		return err
	}

	if !enable {
		cfg.Correction.Enabled = false
		return nil
	}

	providerOptions := []huh.Option[string]{
		huh.NewOption(formatProviderOption(cfg, "openai"), "openai"),
		huh.NewOption(formatProviderOption(cfg, "groq"), "groq"),
	}

	selectedProvider := cfg.Correction.Provider
	if selectedProvider == "" {
		selectedProvider = "openai"
	}

	providerDesc := "Choose which service corrects the transcript"
	if cfg.Correction.Provider != "" && cfg.Correction.Model != "" {
		providerDesc = fmt.Sprintf("Currently: %s/%s", cfg.Correction.Provider, cfg.Correction.Model)
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Correction Provider").
				Description(providerDesc).
				Options(providerOptions...).
				Value(&selectedProvider),
		),
	).WithTheme(getTheme())

	if err := providerForm.Run(); err != nil {
		return err
	}

	if _, ok := cfg.Providers[selectedProvider]; !ok || cfg.Providers[selectedProvider].APIKey == "" {
		apiKey, err := configureSingleProvider(cfg, selectedProvider)
		if err != nil {
			return err
		}
		if apiKey != "" {
			if cfg.Providers == nil {
				cfg.Providers = make(map[string]config.ProviderConfig)
			}
			cfg.Providers[selectedProvider] = config.ProviderConfig{APIKey: apiKey}
		}
	}
	cfg.Correction.Provider = selectedProvider

	modelOptions := getModelOptions(selectedProvider)
	selectedModel := cfg.Correction.Model
	if selectedModel == "" && len(modelOptions) > 0 {
		selectedModel = modelOptions[0].Value
	}

	modelDesc := ""
	if cfg.Correction.Model != "" {
		modelDesc = fmt.Sprintf("Currently: %s", cfg.Correction.Model)
	}

	modelForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Correction Model").
				Description(modelDesc).
				Options(modelOptions...).
				Value(&selectedModel),
		),
	).WithTheme(getTheme())

	if err := modelForm.Run(); err != nil {
		return err
	}

	cfg.Correction.Model = selectedModel

	var tune bool
	tuneForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Tune batching and retries?").
				Description(fmt.Sprintf("Currently: batch %d, context %d, %d retries", cfg.Correction.BatchSize, cfg.Correction.ContextLines, cfg.Correction.MaxRetries)).
				Affirmative("Tune").
				Negative("Keep defaults").
				Value(&tune),
		),
	).WithTheme(getTheme())

	if err := tuneForm.Run(); err != nil {
		return err
	}

	if tune {
		if err := editCorrectionTuning(cfg); err != nil {
			return err
		}
	}

	cfg.Correction.Enabled = true
	return nil
}

func getModelOptions(provider string) []huh.Option[string] {
	switch provider {
	case "openai":
		return []huh.Option[string]{
			huh.NewOption("gpt-4o-mini (recommended)", "gpt-4o-mini"),
			huh.NewOption("gpt-4o", "gpt-4o"),
			huh.NewOption("gpt-4-turbo", "gpt-4-turbo"),
			huh.NewOption("gpt-3.5-turbo", "gpt-3.5-turbo"),
		}
	case "groq":
		return []huh.Option[string]{
			huh.NewOption("llama-3.3-70b-versatile (recommended)", "llama-3.3-70b-versatile"),
			huh.NewOption("llama-3.1-8b-instant (faster)", "llama-3.1-8b-instant"),
			huh.NewOption("mixtral-8x7b-32768", "mixtral-8x7b-32768"),
		}
	default:
		return []huh.Option[string]{}
	}
}

// editCorrectionTuning edits the batching, context, and retry knobs
func editCorrectionTuning(cfg *config.Config) error {
	batchSize := fmt.Sprintf("%d", cfg.Correction.BatchSize)
	contextLines := fmt.Sprintf("%d", cfg.Correction.ContextLines)
	maxRetries := fmt.Sprintf("%d", cfg.Correction.MaxRetries)
	temperature := fmt.Sprintf("%g", cfg.Correction.Temperature)
	batchDelay := cfg.Correction.BatchDelay.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Batch Size").
				Description("Segments corrected concurrently per batch").
				Value(&batchSize).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Context Lines").
				Description("Corrected lines shown to the model as context").
				Value(&contextLines).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Max Retries").
				Description("Retries per segment before keeping the original text").
				Value(&maxRetries).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Temperature").
				Description("Sampling temperature, 0 to 2").
				Value(&temperature).
				Validate(validateTemperature),
			huh.NewInput().
				Title("Batch Delay").
				Description("Pause between batches, e.g. 1.5s").
				Value(&batchDelay).
				Validate(validateDuration),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Correction.BatchSize = mustParseInt(batchSize)
	cfg.Correction.ContextLines = mustParseInt(contextLines)
	cfg.Correction.MaxRetries = mustParseInt(maxRetries)
	cfg.Correction.Temperature = mustParseFloat(temperature)
	cfg.Correction.BatchDelay = mustParseDuration(batchDelay)
	return nil
}
