package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const OllamaID = "ollama"

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaProvider talks to a locally served model runner. No API key; the
// base URL is configurable for non-default installs.
type OllamaProvider struct {
	baseURL string
	client  *resty.Client
}

func NewOllamaProvider(baseURL string) *OllamaProvider {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &OllamaProvider{
		baseURL: baseURL,
		client:  resty.New().SetBaseURL(baseURL),
	}
}

func (p *OllamaProvider) ID() string {
	return OllamaID
}

// clientFor resolves the endpoint for one call: an explicit base URL from
// the stored or submitted config wins over the construction-time default.
func (p *OllamaProvider) clientFor(baseURL string) (*resty.Client, string) {
	if baseURL == "" {
		return p.client, p.baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == p.baseURL {
		return p.client, p.baseURL
	}
	return resty.New().SetBaseURL(baseURL), baseURL
}

func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Model == "" {
		return nil, newError(OllamaID, KindInvalidResponse, "model name cannot be empty", nil)
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	options := map[string]any{
		"temperature": req.Temperature,
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	// Ollama accepts either the string "json" or a full JSON schema as the
	// format field.
	var format any = "json"
	if req.OutputSchema != "" {
		format = json.RawMessage(req.OutputSchema)
	}

	client, baseURL := p.clientFor(req.BaseURL)
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":   req.Model,
			"prompt":  req.Prompt,
			"stream":  false,
			"format":  format,
			"options": options,
		}).
		Post("/api/generate")
	if err != nil {
		return nil, p.translateTransportError(err, baseURL)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// fall through
	case http.StatusNotFound:
		return nil, newError(OllamaID, KindInvalidResponse,
			fmt.Sprintf("model %q not found, pull it first (ollama pull %s)", req.Model, req.Model), nil)
	default:
		return nil, newError(OllamaID, KindNetwork,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode(), resp.String()), nil)
	}

	body := resp.String()
	content := gjson.Get(body, "response").String()
	if strings.TrimSpace(content) == "" {
		return nil, newError(OllamaID, KindInvalidResponse, "empty response from model", nil)
	}

	result := &GenerateResult{
		Content:      content,
		ModelUsed:    req.Model,
		FinishReason: gjson.Get(body, "done_reason").String(),
	}
	if promptTokens := gjson.Get(body, "prompt_eval_count"); promptTokens.Exists() {
		result.TokenUsage = &TokenUsage{
			PromptTokens: int(promptTokens.Int()),
			OutputTokens: int(gjson.Get(body, "eval_count").Int()),
		}
	}
	return result, nil
}

// ValidateConfig checks the submitted endpoint is reachable by listing
// installed models there, not at whatever endpoint the process booted
// with.
func (p *OllamaProvider) ValidateConfig(ctx context.Context, cfg Config) (*ValidationResult, error) {
	client, baseURL := p.clientFor(cfg.BaseURL)
	models, err := p.listModels(ctx, client, baseURL)
	if err != nil {
		return &ValidationResult{Valid: false, Error: err.Error()}, nil
	}
	if cfg.Model != "" {
		found := false
		for _, m := range models {
			if m == cfg.Model || strings.SplitN(m, ":", 2)[0] == cfg.Model {
				found = true
				break
			}
		}
		if !found {
			return &ValidationResult{
				Valid:           false,
				Error:           fmt.Sprintf("model %q is not installed", cfg.Model),
				AvailableModels: models,
			}, nil
		}
	}
	return &ValidationResult{Valid: true, AvailableModels: models}, nil
}

func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.listModels(ctx, p.client, p.baseURL)
}

func (p *OllamaProvider) listModels(ctx context.Context, client *resty.Client, baseURL string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return nil, p.translateTransportError(err, baseURL)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newError(OllamaID, KindNetwork,
			fmt.Sprintf("unexpected status %d listing models", resp.StatusCode()), nil)
	}

	var models []string
	gjson.Get(resp.String(), "models.#.name").ForEach(func(_, v gjson.Result) bool {
		models = append(models, v.String())
		return true
	})
	return models, nil
}

func (p *OllamaProvider) translateTransportError(err error, baseURL string) *Error {
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return newError(OllamaID, KindTimeout, "request timed out", err)
	}
	return newError(OllamaID, KindNetwork,
		fmt.Sprintf("ollama service not reachable at %s, is it running?", baseURL), err)
}
