package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// defaultImageMIME is assumed when the capture layer could not detect the
// screenshot's media type. PNG is what headless-browser captures produce.
const defaultImageMIME = "image/png"

// GeminiClient implements Client using the Google Gemini API.
//
// Verbosity and reasoning effort have no native parameters on this API, so
// they are folded into the system instruction as text hints. Functionally
// equivalent to the OpenAI path, not bit-identical.
type GeminiClient struct {
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed client.
// An empty API key fails immediately with KindAuthMissing; credentials are
// never read mid-request.
func NewGeminiClient(ctx context.Context, creds Credentials, timeout time.Duration) (*GeminiClient, error) {
	if creds.GeminiAPIKey == "" {
		return nil, &PipelineError{
			Kind:     KindAuthMissing,
			Provider: model.ProviderGemini,
			Err:      errors.New(EnvGeminiAPIKey + " is not set"),
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  creds.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &PipelineError{
			Kind:     KindTransportFailure,
			Provider: model.ProviderGemini,
			Err:      err,
		}
	}

	return &GeminiClient{client: client, timeout: timeout}, nil
}

// Provider implements Client.
func (c *GeminiClient) Provider() model.Provider {
	return model.ProviderGemini
}

// Analyze implements Client. It sends the prompt and inline image bytes in
// one generateContent call and returns the concatenated candidate text.
func (c *GeminiClient) Analyze(ctx context.Context, page *model.CapturedPage, prompt string, cfg model.ModelConfig) (string, error) {
	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if page.HasImage() {
		mime := page.MIMEType
		if mime == "" {
			mime = defaultImageMIME
		}
		parts = append(parts, genai.NewPartFromBytes(page.Image, mime))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	genCfg := &genai.GenerateContentConfig{
		// Constrain the model to JSON so the validator sees structured
		// output instead of prose.
		ResponseMIMEType: "application/json",
		// Low temperature keeps critiques reproducible across retries.
		Temperature:       genai.Ptr[float32](0.2),
		SystemInstruction: genai.NewContentFromText(geminiSystemInstruction(cfg), genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, cfg.ModelName, contents, genCfg)
	if err != nil {
		return "", c.classify(err)
	}

	// Concatenate text parts of the first candidate. An empty result is
	// returned as-is: the validator classifies it as a decode failure,
	// which makes it subject to the pipeline's retry bound.
	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			text += part.Text
		}
	}
	return text, nil
}

// classify maps Gemini SDK errors to pipeline error kinds.
// HTTP 429 is the API's quota signal; everything else at this layer is a
// transport failure, including timeouts and 5xx responses.
func (c *GeminiClient) classify(err error) error {
	kind := KindTransportFailure

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		kind = KindRateLimited
	}

	return &PipelineError{
		Kind:     kind,
		Provider: model.ProviderGemini,
		Err:      err,
	}
}
