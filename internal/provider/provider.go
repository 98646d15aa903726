// Package provider abstracts the LLM backends behind one capability
// interface so the worker never branches on a concrete implementation.
package provider

import (
	"context"
	"fmt"
	"time"
)

const DefaultTimeout = 30 * time.Second

// ErrorKind is the closed set of failure classes a provider may surface.
// Transport-level errors must be translated into one of these; callers
// never see a raw HTTP or SDK error.
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network"
	KindInvalidAPIKey   ErrorKind = "invalid_api_key"
	KindRateLimit       ErrorKind = "rate_limit"
	KindTimeout         ErrorKind = "timeout"
	KindInvalidResponse ErrorKind = "invalid_response"
)

type Error struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(provider string, kind ErrorKind, msg string, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Message: msg, Err: err}
}

// Config is the stored configuration for a backend. BaseURL applies to
// local-endpoint providers, APIKey to cloud ones.
type Config struct {
	Provider    string   `json:"provider"`
	BaseURL     string   `json:"base_url,omitempty"`
	APIKey      string   `json:"api_key,omitempty"`
	Model       string   `json:"model"`
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
}

type GenerateRequest struct {
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	// BaseURL and APIKey carry the resolved connection settings for this
	// call. Empty values fall back to the backend's construction-time
	// defaults, so stored settings always win over env vars.
	BaseURL string
	APIKey  string
	// OutputSchema is a JSON schema for the expected response; backends
	// that support constrained decoding pass it through.
	OutputSchema string
}

type TokenUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type GenerateResult struct {
	Content      string
	ModelUsed    string
	TokenUsage   *TokenUsage
	FinishReason string
}

type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Error           string   `json:"error,omitempty"`
	AvailableModels []string `json:"available_models,omitempty"`
}

// Provider is the capability contract every backend implements.
type Provider interface {
	ID() string
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	// ValidateConfig is a side-effecting reachability/credential check for
	// the settings surface; the worker's main path never calls it.
	ValidateConfig(ctx context.Context, cfg Config) (*ValidationResult, error)
	ListModels(ctx context.Context) ([]string, error)
}
