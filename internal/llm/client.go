package llm

import (
	"context"
	"os"
	"time"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// Client is the capability interface every model backend implements.
//
// Design decision: The two backends are selected by the tagged
// model.Provider value in ModelConfig rather than by probing, so adding a
// third provider means adding one implementation and one registry entry
// without touching pipeline logic.
type Client interface {
	// Analyze sends the page image and prompt to the remote model and
	// returns the raw response text. It performs exactly one outbound call:
	// retry policy belongs to the pipeline, not the client, so that the
	// cross-cutting policy stays provider-agnostic.
	//
	// Failures are returned as *PipelineError with kind
	// KindTransportFailure or KindRateLimited.
	Analyze(ctx context.Context, page *model.CapturedPage, prompt string, cfg model.ModelConfig) (string, error)

	// Provider returns the backend this client talks to.
	Provider() model.Provider
}

// Environment variable names for provider credentials.
const (
	// EnvGeminiAPIKey holds the Google Gemini API key.
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// EnvOpenAIAPIKey holds the OpenAI API key.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Credentials holds provider API keys read once at startup.
//
// Design decision: Credentials are an explicit value passed to client
// constructors instead of environment lookups at call time. Tests can
// substitute fake keys without mutating the process environment, and a
// missing key fails fast at construction instead of mid-request.
type Credentials struct {
	// GeminiAPIKey authenticates against the Gemini API.
	GeminiAPIKey string

	// OpenAIAPIKey authenticates against the OpenAI API.
	OpenAIAPIKey string
}

// CredentialsFromEnv reads provider credentials from the process environment.
// Absent variables yield empty fields; the client constructor for the
// selected provider rejects an empty key with KindAuthMissing.
func CredentialsFromEnv() Credentials {
	return Credentials{
		GeminiAPIKey: os.Getenv(EnvGeminiAPIKey),
		OpenAIAPIKey: os.Getenv(EnvOpenAIAPIKey),
	}
}

// callContext applies the per-call timeout to ctx. A zero timeout means the
// caller's context governs the call alone.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
