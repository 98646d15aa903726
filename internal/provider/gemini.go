package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const GeminiID = "gemini"

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider is the cloud backend. It can be constructed without an
// API key (none in the environment yet); a key must then arrive with each
// call via the stored settings.
type GeminiProvider struct {
	apiKey string
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	p := &GeminiProvider{apiKey: apiKey}
	if apiKey == "" {
		return p, nil
	}
	client, err := newGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	p.client = client
	return p, nil
}

func newGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

func (p *GeminiProvider) ID() string {
	return GeminiID
}

// clientFor resolves the client for one call: a key from the stored or
// submitted config wins over the construction-time key.
func (p *GeminiProvider) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" || apiKey == p.apiKey {
		if p.client == nil {
			return nil, newError(GeminiID, KindInvalidAPIKey,
				"gemini API key not configured: set one in settings or GEMINI_API_KEY", nil)
		}
		return p.client, nil
	}
	client, err := newGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, newError(GeminiID, KindInvalidAPIKey, err.Error(), err)
	}
	return client, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	model := req.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, newError(GeminiID, KindInvalidResponse, "prompt cannot be empty", nil)
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := p.clientFor(ctx, req.APIKey)
	if err != nil {
		return nil, err
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.OutputSchema != "" {
		// Constrained JSON decoding; the schema details ride in the prompt.
		genConfig.ResponseMIMEType = "application/json"
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return nil, p.translateAPIError(err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return nil, newError(GeminiID, KindInvalidResponse,
				fmt.Sprintf("prompt blocked by safety filter (%s)", result.PromptFeedback.BlockReason), nil)
		}
		return nil, newError(GeminiID, KindInvalidResponse, "no candidates in response", nil)
	}

	candidate := result.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety:
		return nil, newError(GeminiID, KindInvalidResponse, "response blocked by safety filter", nil)
	case genai.FinishReasonMaxTokens:
		return nil, newError(GeminiID, KindInvalidResponse,
			"response truncated by max output tokens, raise the max tokens setting and retry", nil)
	}

	content := result.Text()
	if strings.TrimSpace(content) == "" {
		return nil, newError(GeminiID, KindInvalidResponse, "empty response text", nil)
	}

	out := &GenerateResult{
		Content:      content,
		ModelUsed:    model,
		FinishReason: string(candidate.FinishReason),
	}
	if result.UsageMetadata != nil {
		out.TokenUsage = &TokenUsage{
			PromptTokens: int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

// ValidateConfig performs a minimal generate call with the submitted
// key: the cheapest way to prove both reachability and the candidate
// credential at once.
func (p *GeminiProvider) ValidateConfig(ctx context.Context, cfg Config) (*ValidationResult, error) {
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	_, err := p.Generate(ctx, GenerateRequest{
		Prompt:    "Reply with the single word: ok",
		Model:     model,
		MaxTokens: 10,
		Timeout:   15 * time.Second,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return &ValidationResult{Valid: false, Error: err.Error()}, nil
	}
	models, _ := p.ListModels(ctx)
	return &ValidationResult{Valid: true, AvailableModels: models}, nil
}

// ListModels returns the generation-capable models this integration is
// known to work with.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	return []string{
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
	}, nil
}

func (p *GeminiProvider) translateAPIError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(GeminiID, KindTimeout, "request timed out", err)
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return newError(GeminiID, KindInvalidAPIKey, "API key rejected", err)
		case 429:
			return newError(GeminiID, KindRateLimit, "quota exceeded, try again later", err)
		}
		return newError(GeminiID, KindNetwork,
			fmt.Sprintf("API error %d: %s", apiErr.Code, apiErr.Message), err)
	}

	msg := err.Error()
	if strings.Contains(msg, "context deadline exceeded") || strings.Contains(msg, "timeout") {
		return newError(GeminiID, KindTimeout, "request timed out", err)
	}
	return newError(GeminiID, KindNetwork, msg, err)
}
