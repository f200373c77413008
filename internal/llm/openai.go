package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/capitalize-ai/mail-assistant/pkg/metrics"
)

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
type OpenAIClient struct {
	opts Options
}

// NewOpenAIClient creates a new OpenAI-compatible client.
func NewOpenAIClient(opts Options) *OpenAIClient {
	if opts.DefaultModel == "" {
		opts.DefaultModel = "llama-3.1-8b-instant"
	}
	return &OpenAIClient{opts: opts}
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Models returns available models.
func (c *OpenAIClient) Models() []string {
	return []string{
		c.opts.DefaultModel,
		"llama-3.1-70b-versatile",
		"gpt-4o-mini",
		"gpt-4o",
	}
}

func (c *OpenAIClient) client(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if c.opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(c.opts.BaseURL, "/")
	}
	if c.opts.HTTPClient != nil {
		cfg.HTTPClient = c.opts.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

// Complete sends a completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if req.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.opts.DefaultModel
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client(req.APIKey).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	latency := time.Since(start)
	if err != nil {
		metrics.RecordCompletion(model, req.Purpose, "error", latency.Seconds(), 0, 0)
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.RecordCompletion(model, req.Purpose, "malformed", latency.Seconds(), 0, 0)
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	metrics.RecordCompletion(resp.Model, req.Purpose, "success", latency.Seconds(), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return &CompletionResponse{
		Content:    resp.Choices[0].Message.Content,
		Model:      resp.Model,
		TokensIn:   resp.Usage.PromptTokens,
		TokensOut:  resp.Usage.CompletionTokens,
		StopReason: string(resp.Choices[0].FinishReason),
		LatencyMs:  latency.Milliseconds(),
	}, nil
}

// mapOpenAIError turns SDK errors into APIError, keeping transport errors intact.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := fmt.Sprintf("HTTP error! status: %d", reqErr.HTTPStatusCode)
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &APIError{StatusCode: reqErr.HTTPStatusCode, Message: msg}
	}

	// go-openai decodes success bodies itself; a decode failure means the shape was wrong.
	if strings.Contains(err.Error(), "unmarshal") || strings.Contains(err.Error(), "invalid character") {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return fmt.Errorf("failed to call completion service: %w", err)
}
