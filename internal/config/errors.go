package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no landing-page URL is specified.
	ErrNoTarget = errors.New("no target specified: provide one or more landing-page URLs")

	// ErrInvalidGenre is returned when the genre is outside the fixed set.
	ErrInvalidGenre = errors.New("invalid genre: run 'lpanalyzer genres' for the supported list")

	// ErrInvalidProvider is returned when the provider is neither gemini
	// nor openai.
	ErrInvalidProvider = errors.New("invalid provider: must be gemini or openai")

	// ErrInvalidVerbosity is returned when verbosity is outside
	// low/medium/high.
	ErrInvalidVerbosity = errors.New("invalid verbosity: must be low, medium, or high")

	// ErrInvalidEffort is returned when reasoning effort is outside
	// minimal/low/medium/high.
	ErrInvalidEffort = errors.New("invalid reasoning effort: must be minimal, low, medium, or high")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate call failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetryLimit is returned when the retry limit is negative.
	// Use 0 to disable validation retries.
	ErrInvalidRetryLimit = errors.New("invalid retry limit: must be non-negative")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrScreenshotWithBatch is returned when a screenshot file is given
	// alongside multiple targets; a local file can describe only one page.
	ErrScreenshotWithBatch = errors.New("screenshot file cannot be combined with multiple targets")
)
