// Package llm provides completion-service client interfaces and implementations.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when the completion payload does not have the expected shape.
var ErrMalformedResponse = errors.New("malformed completion response")

// ErrMissingAPIKey is returned when a request carries no API key.
var ErrMissingAPIKey = errors.New("completion API key is required")

// Role values for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest represents a completion request.
type CompletionRequest struct {
	APIKey      string
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
	// Purpose labels the call for metrics and tracing, e.g. "classify_language".
	Purpose string
}

// ChatMessage represents a chat message for the completion service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for completion providers.
type Client interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string

	// Models returns available models.
	Models() []string
}

// Provider is the type of completion provider.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Options configures a provider client.
type Options struct {
	BaseURL      string
	DefaultModel string
	HTTPClient   *http.Client
}

// NewClient creates a new completion client based on provider.
func NewClient(provider Provider, opts Options) (Client, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(opts), nil
	case ProviderAnthropic:
		return NewAnthropicClient(opts), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", provider)
	}
}

// APIError is a non-success answer from the completion service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API Error: %s", e.Message)
	}
	return fmt.Sprintf("API Error [%d]: %s", e.StatusCode, e.Message)
}
