package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// OpenAIClient implements Client using the OpenAI chat completions API.
//
// Unlike the Gemini path, verbosity and reasoning effort are native API
// parameters here. They are only sent for gpt-5 family models; older models
// reject them.
type OpenAIClient struct {
	client  openai.Client
	timeout time.Duration
}

// NewOpenAIClient creates an OpenAI-backed client.
// An empty API key fails immediately with KindAuthMissing.
func NewOpenAIClient(creds Credentials, timeout time.Duration) (*OpenAIClient, error) {
	if creds.OpenAIAPIKey == "" {
		return nil, &PipelineError{
			Kind:     KindAuthMissing,
			Provider: model.ProviderOpenAI,
			Err:      errors.New(EnvOpenAIAPIKey + " is not set"),
		}
	}

	return &OpenAIClient{
		client:  openai.NewClient(option.WithAPIKey(creds.OpenAIAPIKey)),
		timeout: timeout,
	}, nil
}

// Provider implements Client.
func (c *OpenAIClient) Provider() model.Provider {
	return model.ProviderOpenAI
}

// Analyze implements Client. The screenshot travels as a base64 data URL
// content part ahead of the prompt text, and the response format is pinned
// to a JSON object.
func (c *OpenAIClient) Analyze(ctx context.Context, page *model.CapturedPage, prompt string, cfg model.ModelConfig) (string, error) {
	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	content := make([]openai.ChatCompletionContentPartUnionParam, 0, 2)
	if page.HasImage() {
		mime := page.MIMEType
		if mime == "" {
			mime = defaultImageMIME
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(page.Image))
		content = append(content, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}))
	}
	content = append(content, openai.TextContentPart(prompt))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(cfg.ModelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt()),
			openai.UserMessage(content),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	// Generation controls are official parameters on gpt-5 family models
	// only; sending them to older models is a request error.
	if strings.HasPrefix(cfg.ModelName, "gpt-5") {
		params.ReasoningEffort = openai.ReasoningEffort(cfg.ReasoningEffort)
		params.Verbosity = openai.ChatCompletionNewParamsVerbosity(cfg.Verbosity)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.classify(err)
	}

	// An empty choice list yields an empty raw response, which the
	// validator treats as a decode failure subject to the retry bound.
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps OpenAI SDK errors to pipeline error kinds.
func (c *OpenAIClient) classify(err error) error {
	kind := KindTransportFailure

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		kind = KindRateLimited
	}

	return &PipelineError{
		Kind:     kind,
		Provider: model.ProviderOpenAI,
		Err:      err,
	}
}
