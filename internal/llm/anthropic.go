package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/capitalize-ai/mail-assistant/pkg/metrics"
)

// AnthropicClient is the Anthropic completion client.
type AnthropicClient struct {
	opts Options
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(opts Options) *AnthropicClient {
	if opts.DefaultModel == "" {
		opts.DefaultModel = "claude-3-5-haiku-20241022"
	}
	return &AnthropicClient{opts: opts}
}

// Name returns the provider name.
func (c *AnthropicClient) Name() string {
	return "anthropic"
}

// Models returns available models.
func (c *AnthropicClient) Models() []string {
	return []string{
		"claude-3-5-haiku-20241022",
		"claude-3-5-sonnet-20241022",
		"claude-3-haiku-20240307",
	}
}

// Complete sends a completion request. System messages are folded into the first
// user turn since the Messages API only accepts user and assistant roles.
func (c *AnthropicClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if req.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.opts.DefaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(req.APIKey)}
	if c.opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(c.opts.BaseURL))
	}
	if c.opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(c.opts.HTTPClient))
	}
	client := anthropic.NewClient(clientOpts...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.F(model),
		MaxTokens:   anthropic.F(int64(maxTokens)),
		Temperature: anthropic.F(req.Temperature),
		Messages:    anthropic.F(toAnthropicMessages(req.Messages)),
	})
	latency := time.Since(start)
	if err != nil {
		metrics.RecordCompletion(model, req.Purpose, "error", latency.Seconds(), 0, 0)
		return nil, fmt.Errorf("failed to call completion service: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		metrics.RecordCompletion(model, req.Purpose, "malformed", latency.Seconds(), 0, 0)
		return nil, fmt.Errorf("%w: no text content", ErrMalformedResponse)
	}

	metrics.RecordCompletion(resp.Model, req.Purpose, "success", latency.Seconds(), int(resp.Usage.InputTokens), int(resp.Usage.OutputTokens))

	return &CompletionResponse{
		Content:    content.String(),
		Model:      resp.Model,
		TokensIn:   int(resp.Usage.InputTokens),
		TokensOut:  int(resp.Usage.OutputTokens),
		StopReason: string(resp.StopReason),
		LatencyMs:  latency.Milliseconds(),
	}, nil
}

func toAnthropicMessages(in []ChatMessage) []anthropic.MessageParam {
	var system []string
	var out []anthropic.MessageParam
	for _, msg := range in {
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		text := msg.Content
		if len(system) > 0 && msg.Role == RoleUser {
			text = strings.Join(system, "\n\n") + "\n\n" + text
			system = nil
		}
		out = append(out, anthropic.MessageParam{
			Role: anthropic.F(anthropic.MessageParamRole(msg.Role)),
			Content: anthropic.F([]anthropic.ContentBlockParamUnion{
				anthropic.TextBlockParam{
					Type: anthropic.F(anthropic.TextBlockParamTypeText),
					Text: anthropic.F(text),
				},
			}),
		})
	}
	return out
}
