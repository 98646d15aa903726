package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":          `{"ok":true}`,
			"done_reason":       "stop",
			"prompt_eval_count": 120,
			"eval_count":        80,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)
	result, err := p.Generate(context.Background(), GenerateRequest{
		Prompt:      "hello",
		Model:       "llama3.1",
		Temperature: 0.7,
		MaxTokens:   500,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, result.Content)
	assert.Equal(t, "llama3.1", result.ModelUsed)
	assert.Equal(t, "stop", result.FinishReason)
	require.NotNil(t, result.TokenUsage)
	assert.Equal(t, 120, result.TokenUsage.PromptTokens)
	assert.Equal(t, 80, result.TokenUsage.OutputTokens)

	assert.Equal(t, "llama3.1", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestOllamaGenerateUsesRequestBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"response": `{"ok":true}`})
	}))
	defer srv.Close()

	// Constructed against a dead endpoint; the request's base URL must win.
	p := NewOllamaProvider("http://127.0.0.1:1")
	result, err := p.Generate(context.Background(), GenerateRequest{
		Prompt:  "hello",
		Model:   "llama3.1",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, result.Content)
}

func TestOllamaGenerateSendsOutputSchema(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"response": `{"ok":true}`})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)
	_, err := p.Generate(context.Background(), GenerateRequest{
		Prompt:       "hello",
		Model:        "llama3.1",
		OutputSchema: `{"type":"object","properties":{"ok":{"type":"boolean"}}}`,
	})
	require.NoError(t, err)

	format, ok := gotBody["format"].(map[string]any)
	require.True(t, ok, "format should carry the schema object, got %T", gotBody["format"])
	assert.Equal(t, "object", format["type"])
}

func TestOllamaGenerateModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi", Model: "missing"})
	require.Error(t, err)

	var pErr *Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, KindInvalidResponse, pErr.Kind)
	assert.Contains(t, pErr.Message, `model "missing" not found`)
}

func TestOllamaGenerateUnreachable(t *testing.T) {
	// Point at a closed port.
	p := NewOllamaProvider("http://127.0.0.1:1")
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi", Model: "llama3.1"})
	require.Error(t, err)

	var pErr *Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, KindNetwork, pErr.Kind)
	assert.Contains(t, pErr.Message, "not reachable")
}

func TestOllamaGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "  "})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "hi", Model: "llama3.1"})
	require.Error(t, err)

	var pErr *Error
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, KindInvalidResponse, pErr.Kind)
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3.1:8b"},
				{"name": "mistral:latest"},
			},
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)
	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.1:8b", "mistral:latest"}, models)
}

func TestOllamaValidateConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": "llama3.1:8b"}},
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL)

	res, err := p.ValidateConfig(context.Background(), Config{Model: "llama3.1"})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = p.ValidateConfig(context.Background(), Config{Model: "qwen"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "not installed")
	assert.Equal(t, []string{"llama3.1:8b"}, res.AvailableModels)
}

func TestOllamaValidateConfigUnreachable(t *testing.T) {
	p := NewOllamaProvider("http://127.0.0.1:1")
	res, err := p.ValidateConfig(context.Background(), Config{})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "not reachable")
}

// Validation must check the endpoint the user submitted, not the one the
// process booted with.
func TestOllamaValidateConfigUsesSubmittedBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": "llama3.1:8b"}},
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider("http://127.0.0.1:1")

	res, err := p.ValidateConfig(context.Background(), Config{BaseURL: srv.URL})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"llama3.1:8b"}, res.AvailableModels)

	// And the reverse: a dead submitted endpoint fails even though the
	// constructor's endpoint is live.
	live := NewOllamaProvider(srv.URL)
	res, err = live.ValidateConfig(context.Background(), Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "127.0.0.1:1")
}
