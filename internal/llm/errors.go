package llm

import (
	"errors"
	"fmt"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// ErrorKind classifies a pipeline failure. Every non-success path out of the
// pipeline carries exactly one kind, so callers can branch on failure class
// without string matching.
type ErrorKind string

const (
	// KindAuthMissing means the credential for the selected provider was
	// absent at client construction. Fatal; never retried.
	KindAuthMissing ErrorKind = "auth_missing"

	// KindTransportFailure means a network error, timeout, or non-2xx
	// provider response. Surfaced as-is; the pipeline does not retry it.
	KindTransportFailure ErrorKind = "transport_failure"

	// KindRateLimited means the provider signaled a quota or rate limit.
	// Surfaced distinctly so the caller can back off.
	KindRateLimited ErrorKind = "rate_limited"

	// KindStructuredDecode means the raw response was not well-formed JSON.
	// Triggers a pipeline retry.
	KindStructuredDecode ErrorKind = "structured_decode_failure"

	// KindSchemaViolation means the response decoded but misses required
	// fields or uses values outside the enumerated sets. Triggers a retry.
	KindSchemaViolation ErrorKind = "schema_violation"

	// KindValidationExhausted means the retry bound was reached without a
	// valid result. Terminal; carries the last raw response for diagnostics.
	KindValidationExhausted ErrorKind = "validation_exhausted"
)

// Retryable reports whether the pipeline may re-invoke the provider after
// a failure of this kind. Only malformed-output kinds are retryable; the
// retry policy deliberately excludes transport and rate-limit failures.
func (k ErrorKind) Retryable() bool {
	return k == KindStructuredDecode || k == KindSchemaViolation
}

// PipelineError is the classified failure type for every error the analysis
// pipeline surfaces.
type PipelineError struct {
	// Kind is the failure classification.
	Kind ErrorKind

	// Provider identifies which backend was involved, when known.
	Provider model.Provider

	// RawResponse holds the offending model output for decode, schema, and
	// exhaustion failures. Empty for transport-level failures.
	RawResponse string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	msg := string(e.Kind)
	if e.Provider != "" {
		msg = fmt.Sprintf("%s (provider %s)", msg, e.Provider)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from an error. The second return value is
// false when err is not a *PipelineError.
func KindOf(err error) (ErrorKind, bool) {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a *PipelineError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
