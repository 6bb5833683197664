package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"captionfix/internal/config"
	"captionfix/internal/deps"
	"captionfix/internal/history"
	"captionfix/internal/pipeline"
	"captionfix/internal/server"
	"captionfix/internal/tui"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "captionfix",
	Short:         "Fetch and AI-correct YouTube transcripts",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		fetchCmd(),
		correctCmd(),
		historyCmd(),
		configureCmd(),
		doctorCmd(),
		versionCmd(),
	)
}

// loadConfig loads the user config, falling back to defaults when the user
// has not run configure yet.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openHistory opens the history store when enabled, nil otherwise.
func openHistory(cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path, cfg.History.Limit)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the transcript API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			manager := config.NewManager(cfg)
			if err := manager.StartWatching(ctx); err != nil {
				return fmt.Errorf("watch config: %w", err)
			}
			defer manager.Stop()

			store, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store != nil {
				defer store.Close()
			}

			srv := server.New(manager, pipeline.New(manager, store), store)
			if err := srv.Start(ctx); err != nil {
				return err
			}
			defer srv.Stop()

			<-ctx.Done()
			return nil
		},
	}
}

func fetchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fetch <url-or-video-id>",
		Short: "Fetch a transcript without correction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), args[0], false, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON report")

	return cmd
}

func correctCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "correct <url-or-video-id>",
		Short: "Fetch a transcript and run AI correction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), args[0], true, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON report")

	return cmd
}

func runLookup(ctx context.Context, rawURL string, correct, asJSON bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if correct && !cfg.IsCorrectionEnabled() {
		return fmt.Errorf("correction is not configured: run captionfix configure or set an API key")
	}

	store, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	service := pipeline.New(config.NewManager(cfg), store)
	report, err := service.Lookup(ctx, rawURL, correct)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(report *pipeline.Report) {
	if !report.Corrected {
		for _, result := range report.Results {
			fmt.Printf("[%s] %s\n", formatOffset(result.Offset), result.Text)
		}
		fmt.Printf("\n%d segments\n", report.Stats.Segments)
		return
	}

	var rows [][]string
	for _, result := range report.Results {
		if !result.HasError {
			continue
		}
		rows = append(rows, []string{
			formatOffset(result.Offset),
			result.Original,
			result.Corrected,
		})
	}

	if len(rows) == 0 {
		fmt.Println("No corrections needed.")
	} else {
		fmt.Println(renderTable(
			[]string{"Time", "Original", "Corrected"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft},
		))
	}

	fmt.Printf("\n%d segments, %d changed, %d kept original after retries\n",
		report.Stats.Segments, report.Stats.Changed, report.Stats.Degraded)
}

// formatOffset renders a millisecond offset as m:ss.
func formatOffset(offsetMS float64) string {
	total := int(offsetMS) / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the lookup history",
	}

	cmd.AddCommand(historyListCmd(), historyClearCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent transcript lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store == nil {
				return fmt.Errorf("history is disabled in the config")
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No lookups recorded yet.")
				return nil
			}

			var rows [][]string
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					entry.VideoID,
					strconv.Itoa(entry.Segments),
					strconv.Itoa(entry.Changed),
				})
			}

			fmt.Println(renderTable(
				[]string{"When", "Video", "Segments", "Changed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")

	return cmd
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store == nil {
				return fmt.Errorf("history is disabled in the config")
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for captionfix.
This will guide you through setting up:
- Provider API keys (OpenAI, Groq)
- AI correction and batching
- API server and history preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.DefaultConfig()
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()

	fmt.Println("Next Steps:")
	fmt.Println("1. Install the fetch helper dependency: pip install youtube-transcript-api")
	fmt.Println("2. Start the API server: captionfix serve")
	fmt.Println("3. Or correct a video directly: captionfix correct <url>")
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
	return nil
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the fetch helper dependencies are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ok := true
			ok = printCheck("python interpreter", deps.CheckPython(cfg.Fetcher.Python)) && ok
			ok = printCheck("youtube-transcript-api", deps.CheckTranscriptAPI(cfg.Fetcher.Python)) && ok
			ok = printCheck("fetch script", deps.CheckScript(cfg.Fetcher.Script)) && ok

			if !ok {
				return fmt.Errorf("some dependencies are missing")
			}
			fmt.Println("\nAll dependencies are installed.")
			return nil
		},
	}
}

func printCheck(name string, status deps.Status) bool {
	if !status.Installed {
		fmt.Printf("[ ] %s: not found\n", name)
		return false
	}
	line := fmt.Sprintf("[x] %s: %s", name, status.Path)
	if status.Version != "" {
		line += fmt.Sprintf(" (%s)", status.Version)
	}
	fmt.Println(line)
	return true
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the captionfix version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
