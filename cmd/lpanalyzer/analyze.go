package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/onitasu/lp-ai-analyzer/internal/capture"
	"github.com/onitasu/lp-ai-analyzer/internal/config"
	"github.com/onitasu/lp-ai-analyzer/internal/database"
	"github.com/onitasu/lp-ai-analyzer/internal/llm"
	"github.com/onitasu/lp-ai-analyzer/internal/log"
	"github.com/onitasu/lp-ai-analyzer/internal/model"
	"github.com/onitasu/lp-ai-analyzer/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Analyze landing pages with a multimodal LLM",
		Long: `Analyze sends a landing-page screenshot to a multimodal LLM and produces
a validated design critique: visual issues with priority and category, plus
improvement suggestions.

The genre selects which audit prompt is used. Responses that fail JSON or
schema validation are retried up to the retry limit; transport, auth, and
rate-limit failures are reported immediately.

Examples:
  # Analyze a single page with the default provider (Gemini)
  lpanalyzer analyze --screenshot page.png https://example.com

  # Pick a genre and provider
  lpanalyzer analyze -g d2c_product --provider openai -s page.png https://example.com

  # Output Markdown to a file
  lpanalyzer analyze -s page.png -m -o report.md https://example.com

  # Batch analysis with per-site screenshots from the config file
  lpanalyzer analyze -c .lpanalyzer https://a.example https://b.example

Configuration file (.lpanalyzer) example:
  defaults:
    genre: saas_tool
    provider: gemini
  sites:
    a.example:
      genre: recruiting
      screenshot: shots/a.png
      extraInstruction: "Focus on the hero section."
    b.example:
      screenshot: shots/b.png`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Analysis selection flags
	cmd.Flags().StringP("genre", "g", string(config.DefaultGenre),
		"Landing-page genre (saas_tool, d2c_product, education, recruiting, app_download)")
	cmd.Flags().String("provider", string(config.DefaultProvider),
		"Model provider (gemini or openai)")
	cmd.Flags().String("model", "",
		"Model name (defaults to the provider's standard model)")
	cmd.Flags().String("verbosity", string(config.DefaultVerbosity),
		"Output detail level (low, medium, high)")
	cmd.Flags().String("effort", string(config.DefaultReasoningEffort),
		"Reasoning effort (minimal, low, medium, high)")
	cmd.Flags().String("instruction", "",
		"Extra free-text instruction appended to the analysis prompt")

	// Input flags
	cmd.Flags().StringP("screenshot", "s", "",
		"Screenshot file of the target page (single target only)")

	// Behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each provider call")
	cmd.Flags().Int("retry", config.DefaultRetryLimit,
		"Additional attempts after a validation failure")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")
	cmd.Flags().Bool("no-save", false,
		"Do not record the run in the history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .lpanalyzer in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags and the optional config file
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential sanitization
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// config file. Precedence: flags > config file defaults > built-in defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file before flag values so that explicitly set flags
	// can override file defaults below.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	if err := applyFileDefaults(cfg, cfg.FileConfig.Defaults); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("genre") {
		genreStr, err := cmd.Flags().GetString("genre")
		if err != nil {
			return nil, err
		}
		cfg.Genre, err = model.ParseGenre(genreStr)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("provider") {
		providerStr, err := cmd.Flags().GetString("provider")
		if err != nil {
			return nil, err
		}
		cfg.Provider, err = model.ParseProvider(providerStr)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("model") {
		cfg.ModelName, err = cmd.Flags().GetString("model")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("verbosity") {
		verbosityStr, err := cmd.Flags().GetString("verbosity")
		if err != nil {
			return nil, err
		}
		cfg.Verbosity, err = model.ParseVerbosity(verbosityStr)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("effort") {
		effortStr, err := cmd.Flags().GetString("effort")
		if err != nil {
			return nil, err
		}
		cfg.ReasoningEffort, err = model.ParseReasoningEffort(effortStr)
		if err != nil {
			return nil, err
		}
	}

	cfg.ExtraInstruction, err = cmd.Flags().GetString("instruction")
	if err != nil {
		return nil, err
	}

	cfg.ScreenshotPath, err = cmd.Flags().GetString("screenshot")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.RetryLimit, err = cmd.Flags().GetInt("retry")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the target URLs
	cfg.Targets = args

	cfg.Normalize()

	return cfg, nil
}

// applyFileDefaults copies config-file default values into cfg.
// Values are parsed eagerly so a typo in the file fails before any analysis.
func applyFileDefaults(cfg *config.Config, defaults config.FileDefaults) error {
	var err error

	if defaults.Genre != "" {
		cfg.Genre, err = model.ParseGenre(defaults.Genre)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}
	if defaults.Provider != "" {
		cfg.Provider, err = model.ParseProvider(defaults.Provider)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}
	if defaults.Model != "" {
		cfg.ModelName = defaults.Model
	}
	if defaults.Verbosity != "" {
		cfg.Verbosity, err = model.ParseVerbosity(defaults.Verbosity)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}
	if defaults.Effort != "" {
		cfg.ReasoningEffort, err = model.ParseReasoningEffort(defaults.Effort)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}

	return nil
}

// runAnalyze executes the analysis for all targets.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"targets", cfg.Targets,
		"genre", cfg.Genre,
		"provider", cfg.Provider,
		"model", cfg.ModelName,
		"batchSize", cfg.BatchSize,
	)

	// Open the run-history database if saving is enabled
	var db *database.RunDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Construct the client for the selected provider. Credential checks
	// happen here, before any capture or provider traffic.
	client, err := newProviderClient(ctx, cfg)
	if err != nil {
		return err
	}

	pipeline := llm.NewPipeline([]llm.Client{client},
		llm.WithLogger(logger),
		llm.WithRetryLimit(cfg.RetryLimit),
	)

	capturer := capture.New(cfg.FetchTimeout, capture.WithLogger(logger))

	analyze := func(ctx context.Context, target string) *model.Report {
		return analyzeTarget(ctx, cfg, capturer, pipeline, target, logger)
	}

	// Use the batch processor for parallel analysis if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, db, analyze, logger)
	}

	return runSequentialAnalyze(ctx, cfg, db, analyze, logger)
}

// newProviderClient constructs the client for the configured provider.
func newProviderClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	creds := llm.CredentialsFromEnv()

	switch cfg.Provider {
	case model.ProviderOpenAI:
		return llm.NewOpenAIClient(creds, cfg.Timeout)
	default:
		return llm.NewGeminiClient(ctx, creds, cfg.Timeout)
	}
}

// runSequentialAnalyze analyzes targets one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, db *database.RunDB, analyze llm.AnalyzeFunc, logger *slog.Logger) error {
	var firstErr error
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Analyzing %s...\n", target)
		startTime := time.Now()

		runReport := analyze(ctx, target)

		elapsed := time.Since(startTime)
		if runReport.Succeeded() {
			fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))
		} else {
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %s\n\n", target, runReport.ErrorMessage)
			if firstErr == nil {
				firstErr = fmt.Errorf("analysis failed for %s: %s", target, runReport.ErrorMessage)
			}
		}

		if err := outputReport(cfg, runReport); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		if err := saveRun(ctx, db, runReport, logger); err != nil {
			logger.Error("failed to save run", "target", target, "error", err)
		}
	}

	return firstErr
}

// runBatchAnalyze analyzes multiple targets concurrently.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, db *database.RunDB, analyze llm.AnalyzeFunc, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d targets (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	bp := llm.NewBatchProcessor(analyze,
		llm.WithConcurrency(cfg.BatchSize),
		llm.WithBatchLogger(logger),
	)

	// Stream results as they complete; writers share stdout, so the
	// callback serializes via the batch processor's goroutine + this mutex.
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(runReport *model.Report, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(cfg.Targets), runReport.URL)

		if err := outputReport(cfg, runReport); err != nil {
			logger.Error("report failed", "target", runReport.URL, "error", err)
		}

		if err := saveRun(ctx, db, runReport, logger); err != nil {
			logger.Error("failed to save run", "target", runReport.URL, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// analyzeTarget runs the full chain for one target: site config merge,
// capture, pipeline run. Failures are recorded in the returned report.
func analyzeTarget(ctx context.Context, cfg *config.Config, capturer *capture.Capturer, pipeline *llm.Pipeline, target string, logger *slog.Logger) *model.Report {
	genre, instruction, screenshot := resolveSiteOverrides(cfg, target)

	mcfg := cfg.ModelConfig()

	page, err := capturer.Capture(ctx, target, screenshot)
	if err != nil {
		logger.Error("capture failed", "target", target, "error", err)
		runReport := model.NewReport(&model.CapturedPage{URL: target}, genre, mcfg)
		runReport.ErrorMessage = err.Error()
		return runReport
	}

	runReport := model.NewReport(page, genre, mcfg)

	result, attempts, err := pipeline.RunWithAttempts(ctx, page, genre, mcfg, instruction)
	runReport.Attempts = attempts
	if err != nil {
		runReport.ErrorMessage = err.Error()
		return runReport
	}

	runReport.Result = result
	return runReport
}

// resolveSiteOverrides merges global config with per-site config file
// entries for one target. Flags win over site entries for genre and
// instruction; the screenshot flag only exists for single-target runs, so
// site entries are the only source in batch mode.
func resolveSiteOverrides(cfg *config.Config, target string) (model.Genre, string, string) {
	genre := cfg.Genre
	instruction := cfg.ExtraInstruction
	screenshot := cfg.ScreenshotPath

	site := cfg.FileConfig.SiteFor(hostOf(target))

	if site.Genre != "" {
		if g, err := model.ParseGenre(site.Genre); err == nil {
			genre = g
		}
	}
	if instruction == "" {
		instruction = site.ExtraInstruction
	}
	if screenshot == "" {
		screenshot = site.Screenshot
	}

	return genre, instruction, screenshot
}

// hostOf extracts the hostname used as the site config key.
func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	return u.Hostname()
}

// outputReport outputs the report in the requested format.
func outputReport(cfg *config.Config, runReport *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output)
	}

	_, err := writer.Write(runReport)
	return err
}

// saveRun records the run in the history database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.RunDB, runReport *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to database", "target", runReport.URL, "id", id)
	return nil
}
