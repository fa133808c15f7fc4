package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// Default configuration values.
// These values are chosen for the characteristics of multimodal LLM calls:
// they are slow, metered, and non-deterministic.
const (
	// DefaultTimeout applies to each provider call. Vision-capable models
	// routinely take tens of seconds on large screenshots, so a generous
	// timeout avoids false transport failures; the caller can lower it for
	// fast models.
	DefaultTimeout = 180 * time.Second

	// DefaultRetryLimit is the number of additional provider invocations
	// after a validation failure. Only malformed-output failures consume
	// retries; transport and rate-limit failures never do.
	DefaultRetryLimit = 2

	// DefaultBatchSize bounds concurrent analyses when multiple URLs are
	// given. Providers rate-limit aggressively, so the default stays small.
	DefaultBatchSize = 3

	// DefaultGenre is used when no genre flag or config entry applies.
	DefaultGenre = model.GenreSaaSTool

	// DefaultProvider is the backend used when none is selected.
	DefaultProvider = model.ProviderGemini

	// DefaultGeminiModel is the Gemini model used when none is named.
	// Flash is fast, cheap, and does not spend thinking tokens.
	DefaultGeminiModel = "gemini-2.5-flash"

	// DefaultOpenAIModel is the OpenAI model used when none is named.
	DefaultOpenAIModel = "gpt-5-mini"

	// DefaultVerbosity keeps critiques terse by default.
	DefaultVerbosity = model.VerbosityLow

	// DefaultReasoningEffort favors fast conclusions by default.
	DefaultReasoningEffort = model.EffortMinimal

	// DefaultFetchTimeout applies to the lightweight metadata fetch of the
	// target page, which is an ordinary HTTP GET.
	DefaultFetchTimeout = 30 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "lpanalyzer"
)

// Config holds all configuration options for an analyzer invocation.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Targets is the list of landing-page URLs to analyze.
	Targets []string

	// Genre is the landing-page category driving prompt selection.
	Genre model.Genre

	// Provider selects the model backend.
	Provider model.Provider

	// ModelName is the provider-specific model identifier. When empty,
	// the provider's default model is filled in by Normalize.
	ModelName string

	// Verbosity controls output detail (native parameter for OpenAI,
	// prompt text for Gemini).
	Verbosity model.Verbosity

	// ReasoningEffort controls reasoning depth (same provider mapping
	// as Verbosity).
	ReasoningEffort model.ReasoningEffort

	// ExtraInstruction is an optional free-text request appended to the
	// analysis prompt.
	ExtraInstruction string

	// ScreenshotPath is a local screenshot file to analyze. When set with
	// a single target, the file is used instead of asking an external
	// capture service. Required until a capture subsystem is attached.
	ScreenshotPath string

	// Timeout is the per-provider-call timeout.
	Timeout time.Duration

	// FetchTimeout is the timeout for the page metadata fetch.
	FetchTimeout time.Duration

	// RetryLimit is the validation retry bound (additional attempts).
	RetryLimit int

	// BatchSize is the number of concurrent analyses for multiple targets.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. When set, the
	// report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .lpanalyzer in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// FileConfig holds values loaded from the config file.
	FileConfig *File

	// DBDir is the directory for the SQLite run-history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to persist runs to the history database.
	SaveToDB bool
}

// NewConfig creates a Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases; users override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Genre:           DefaultGenre,
		Provider:        DefaultProvider,
		Verbosity:       DefaultVerbosity,
		ReasoningEffort: DefaultReasoningEffort,
		Timeout:         DefaultTimeout,
		FetchTimeout:    DefaultFetchTimeout,
		RetryLimit:      DefaultRetryLimit,
		BatchSize:       DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for the analyzer.
// On Linux: ~/.local/share/lpanalyzer
// On macOS: ~/Library/Application Support/lpanalyzer
// On Windows: %LOCALAPPDATA%\lpanalyzer
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the analyzer.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Normalize fills derived values after flags and file config are merged:
// the provider's default model name when none was given.
func (c *Config) Normalize() {
	if c.ModelName == "" {
		switch c.Provider {
		case model.ProviderOpenAI:
			c.ModelName = DefaultOpenAIModel
		default:
			c.ModelName = DefaultGeminiModel
		}
	}
}

// ModelConfig assembles the immutable per-request model configuration.
func (c *Config) ModelConfig() model.ModelConfig {
	return model.ModelConfig{
		Provider:        c.Provider,
		ModelName:       c.ModelName,
		Verbosity:       c.Verbosity,
		ReasoningEffort: c.ReasoningEffort,
	}
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
// We return the first error found because fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if !c.Genre.Valid() {
		return ErrInvalidGenre
	}

	if !c.Provider.Valid() {
		return ErrInvalidProvider
	}

	if !c.Verbosity.Valid() {
		return ErrInvalidVerbosity
	}

	if !c.ReasoningEffort.Valid() {
		return ErrInvalidEffort
	}

	// Timeout must be positive; zero would cause immediate call failures.
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Negative means "no bound", which this pipeline never allows.
	if c.RetryLimit < 0 {
		return ErrInvalidRetryLimit
	}

	// BatchSize must be positive; zero would mean no analyses run.
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive.
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// A screenshot file applies to exactly one target.
	if c.ScreenshotPath != "" && len(c.Targets) > 1 {
		return ErrScreenshotWithBatch
	}

	return nil
}
