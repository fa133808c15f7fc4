package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// DefaultRetryLimit is the number of additional provider invocations the
// pipeline makes after the first attempt fails validation. LLM output is
// non-deterministic, so re-invoking the same provider with the same prompt
// is a legitimate recovery strategy for malformed output; two extra
// attempts recovers most transient formatting slips without hiding a model
// that simply cannot follow the schema.
const DefaultRetryLimit = 2

// Pipeline orchestrates one analysis: prompt lookup, provider invocation,
// and response validation with bounded retry.
//
// A Pipeline is safe for concurrent use: Run keeps all per-request state
// (page, config, retry counter) on its own stack, so independent requests
// are independent call chains.
type Pipeline struct {
	// clients maps each provider to its registered client.
	clients map[model.Provider]Client

	// retryLimit is the number of additional attempts after the first.
	retryLimit int

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithRetryLimit overrides the number of additional attempts made after a
// validation failure. Zero disables retries entirely; negative values are
// ignored.
func WithRetryLimit(n int) PipelineOption {
	return func(p *Pipeline) {
		if n >= 0 {
			p.retryLimit = n
		}
	}
}

// NewPipeline creates a Pipeline with the given provider clients.
// Each client is registered under the provider it reports; registering two
// clients for the same provider keeps the last one.
func NewPipeline(clients []Client, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		clients:    make(map[model.Provider]Client, len(clients)),
		retryLimit: DefaultRetryLimit,
	}
	for _, c := range clients {
		p.clients[c.Provider()] = c
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Run analyzes one captured page and returns a validated AnalysisResult or
// a classified *PipelineError.
//
// Control flow:
//  1. Compose the prompt from the genre catalog and page metadata.
//  2. Select the client matching cfg.Provider.
//  3. Invoke the client. Transport, auth, and rate-limit failures are
//     returned unchanged; they are never retried at this layer.
//  4. Validate the raw response. Success returns immediately.
//  5. Decode and schema failures retry from step 3 up to the retry limit;
//     each retry is independent and no backoff is applied beyond what the
//     provider client itself imposes.
//  6. Exhaustion returns KindValidationExhausted carrying the last raw
//     response for diagnostics.
func (p *Pipeline) Run(ctx context.Context, page *model.CapturedPage, genre model.Genre, cfg model.ModelConfig) (*model.AnalysisResult, error) {
	result, _, err := p.RunWithAttempts(ctx, page, genre, cfg, "")
	return result, err
}

// RunWithAttempts is Run plus an optional free-text instruction appended to
// the analysis prompt and the number of provider invocations performed.
// The attempt count feeds run reports and the history database.
func (p *Pipeline) RunWithAttempts(ctx context.Context, page *model.CapturedPage, genre model.Genre, cfg model.ModelConfig, extraInstruction string) (*model.AnalysisResult, int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	client, ok := p.clients[cfg.Provider]
	if !ok {
		return nil, 0, fmt.Errorf("no client registered for provider %q", cfg.Provider)
	}

	prompt := BuildPrompt(genre, page, extraInstruction)
	return p.runPrompt(ctx, client, page, prompt, cfg)
}

// runPrompt is the invoke-validate-retry loop shared by the Run variants.
func (p *Pipeline) runPrompt(ctx context.Context, client Client, page *model.CapturedPage, prompt string, cfg model.ModelConfig) (*model.AnalysisResult, int, error) {
	maxAttempts := 1 + p.retryLimit

	var lastRaw string
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Respect cancellation between attempts; the client call itself
		// honors the context too.
		select {
		case <-ctx.Done():
			return nil, attempt - 1, &PipelineError{
				Kind:     KindTransportFailure,
				Provider: cfg.Provider,
				Err:      ctx.Err(),
			}
		default:
		}

		p.logger.Debug("invoking provider",
			"provider", cfg.Provider,
			"model", cfg.ModelName,
			"attempt", attempt,
			"url", page.URL,
		)

		raw, err := client.Analyze(ctx, page, prompt, cfg)
		if err != nil {
			// Transport, auth, and rate-limit failures belong to the
			// caller; the validator's retry bound does not apply.
			return nil, attempt, err
		}

		result, err := Parse(raw)
		if err == nil {
			p.logger.Info("analysis validated",
				"provider", cfg.Provider,
				"attempts", attempt,
				"summary", result.Summary(),
			)
			return result, attempt, nil
		}

		kind, _ := KindOf(err)
		if !kind.Retryable() {
			return nil, attempt, err
		}

		p.logger.Warn("response failed validation, retrying",
			"provider", cfg.Provider,
			"attempt", attempt,
			"kind", kind,
			"error", err,
		)
		lastRaw = raw
		lastErr = err
	}

	return nil, maxAttempts, &PipelineError{
		Kind:        KindValidationExhausted,
		Provider:    cfg.Provider,
		RawResponse: lastRaw,
		Err:         lastErr,
	}
}
