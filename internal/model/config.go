package model

import "fmt"

// Provider identifies the remote large-language-model service backing an
// analysis request.
type Provider string

const (
	// ProviderGemini selects the Google Gemini backend.
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI selects the OpenAI backend.
	ProviderOpenAI Provider = "openai"
)

// ParseProvider converts a string into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGemini, ProviderOpenAI:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("unknown provider %q (valid: %s, %s)", s, ProviderGemini, ProviderOpenAI)
	}
}

// Valid reports whether the provider is one of the supported backends.
func (p Provider) Valid() bool {
	return p == ProviderGemini || p == ProviderOpenAI
}

// String implements fmt.Stringer.
func (p Provider) String() string {
	return string(p)
}

// Verbosity controls how detailed the model's critique should be.
//
// For the OpenAI provider this is passed as a native API parameter; for the
// Gemini provider it is folded into the prompt as an instruction. The semantic
// meaning is the same on both paths.
type Verbosity string

const (
	// VerbosityLow requests terse, essentials-only output.
	VerbosityLow Verbosity = "low"

	// VerbosityMedium requests moderately detailed output.
	VerbosityMedium Verbosity = "medium"

	// VerbosityHigh requests thorough explanations with rationale.
	VerbosityHigh Verbosity = "high"
)

// ParseVerbosity converts a string into a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch Verbosity(s) {
	case VerbosityLow, VerbosityMedium, VerbosityHigh:
		return Verbosity(s), nil
	default:
		return "", fmt.Errorf("unknown verbosity %q (valid: low, medium, high)", s)
	}
}

// Valid reports whether the verbosity is one of the enumerated levels.
func (v Verbosity) Valid() bool {
	return v == VerbosityLow || v == VerbosityMedium || v == VerbosityHigh
}

// ReasoningEffort controls how much internal reasoning the model applies.
//
// Like Verbosity, this maps to a native API parameter for OpenAI and to
// prompt-instruction text for Gemini.
type ReasoningEffort string

const (
	// EffortMinimal requests the fastest possible response with minimal reasoning.
	EffortMinimal ReasoningEffort = "minimal"

	// EffortLow requests light reasoning.
	EffortLow ReasoningEffort = "low"

	// EffortMedium requests balanced reasoning.
	EffortMedium ReasoningEffort = "medium"

	// EffortHigh requests careful multi-step reasoning.
	EffortHigh ReasoningEffort = "high"
)

// ParseReasoningEffort converts a string into a ReasoningEffort.
func ParseReasoningEffort(s string) (ReasoningEffort, error) {
	switch ReasoningEffort(s) {
	case EffortMinimal, EffortLow, EffortMedium, EffortHigh:
		return ReasoningEffort(s), nil
	default:
		return "", fmt.Errorf("unknown reasoning effort %q (valid: minimal, low, medium, high)", s)
	}
}

// Valid reports whether the effort is one of the enumerated levels.
func (e ReasoningEffort) Valid() bool {
	switch e {
	case EffortMinimal, EffortLow, EffortMedium, EffortHigh:
		return true
	default:
		return false
	}
}

// ModelConfig describes the provider, model name, and generation controls for
// one analysis request. It is constructed once per request from user selection
// and never mutated afterwards; the pipeline and clients only read it.
type ModelConfig struct {
	// Provider selects which backend handles the request.
	Provider Provider

	// ModelName is the provider-specific model identifier
	// (e.g. "gemini-2.5-flash" or "gpt-5-mini").
	ModelName string

	// Verbosity controls output detail. See Verbosity for provider mapping.
	Verbosity Verbosity

	// ReasoningEffort controls reasoning depth. See ReasoningEffort for
	// provider mapping.
	ReasoningEffort ReasoningEffort
}

// Validate checks that every field holds an enumerated or non-empty value.
// It returns the first problem found.
func (c ModelConfig) Validate() error {
	if !c.Provider.Valid() {
		return fmt.Errorf("model config: invalid provider %q", c.Provider)
	}
	if c.ModelName == "" {
		return fmt.Errorf("model config: model name is required")
	}
	if !c.Verbosity.Valid() {
		return fmt.Errorf("model config: invalid verbosity %q", c.Verbosity)
	}
	if !c.ReasoningEffort.Valid() {
		return fmt.Errorf("model config: invalid reasoning effort %q", c.ReasoningEffort)
	}
	return nil
}
