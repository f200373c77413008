// Package service orchestrates the completion calls behind the mail assistant.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitalize-ai/mail-assistant/internal/credential"
	"github.com/capitalize-ai/mail-assistant/internal/extract"
	"github.com/capitalize-ai/mail-assistant/internal/llm"
	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/internal/prompt"
	"github.com/capitalize-ai/mail-assistant/pkg/logger"
	"github.com/capitalize-ai/mail-assistant/pkg/metrics"
	"github.com/capitalize-ai/mail-assistant/pkg/tracing"
)

// Completion purposes, used as metric and span labels.
const (
	purposeClassifyLanguage  = "classify_language"
	purposeClassifyFormality = "classify_formality"
	purposeImprove           = "improve"
	purposeTranslate         = "translate"
	purposeSuggest           = "suggest"
	purposeBackfill          = "backfill"
)

const publishTimeout = 2 * time.Second

// EventPublisher receives an event for every finished operation.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *model.AssistEvent) error
}

// AssistOptions tunes the completion calls.
type AssistOptions struct {
	Model                  string
	MaxTokens              int
	ClassifyTemperature    float64
	TransformTemperature   float64
	SuggestTemperature     float64
	BackfillTemperature    float64
	CallTimeout            time.Duration
	ParallelClassification bool
}

// DefaultAssistOptions returns the options used when nothing is configured.
func DefaultAssistOptions() AssistOptions {
	return AssistOptions{
		Model:                "llama-3.1-8b-instant",
		MaxTokens:            1000,
		ClassifyTemperature:  0.1,
		TransformTemperature: 0.1,
		SuggestTemperature:   0.7,
		BackfillTemperature:  0.8,
		CallTimeout:          20 * time.Second,
	}
}

// AssistService implements improve, translate and reply suggestions.
type AssistService struct {
	client    llm.Client
	creds     credential.Source
	opts      AssistOptions
	publisher EventPublisher
	tracer    trace.Tracer
	logger    *logger.Logger
}

// NewAssistService creates a new assist service. publisher may be nil.
func NewAssistService(
	client llm.Client,
	creds credential.Source,
	opts AssistOptions,
	publisher EventPublisher,
	log *logger.Logger,
) *AssistService {
	if log == nil {
		log = logger.NewNop()
	}
	return &AssistService{
		client:    client,
		creds:     creds,
		opts:      opts,
		publisher: publisher,
		tracer:    tracing.Tracer("mail-assistant/service"),
		logger:    log.Named("assist"),
	}
}

// Improve fixes grammar and spelling of text while keeping its language and tone.
func (s *AssistService) Improve(ctx context.Context, text string) (*model.AssistResult, error) {
	ctx, span := s.tracer.Start(ctx, "AssistService.Improve")
	defer span.End()

	event := s.newEvent(ctx, model.OperationImprove)
	result, err := s.transform(ctx, event, text, func(lang model.Language, tone model.Tone) (string, prompt.Prompt) {
		return purposeImprove, prompt.Improve(text, lang, tone)
	})
	s.finish(ctx, span, event, err)

	return result, err
}

// Translate translates text into target while keeping its tone.
func (s *AssistService) Translate(ctx context.Context, text, target string) (*model.AssistResult, error) {
	ctx, span := s.tracer.Start(ctx, "AssistService.Translate")
	defer span.End()

	event := s.newEvent(ctx, model.OperationTranslate)

	// Validate the target before anything else, including the credential.
	targetLang, ok := model.ParseLanguage(target)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
		s.finish(ctx, span, event, err)
		return nil, err
	}
	event.TargetLanguage = targetLang
	span.SetAttributes(attribute.String("target_language", string(targetLang)))

	result, err := s.transform(ctx, event, text, func(_ model.Language, tone model.Tone) (string, prompt.Prompt) {
		return purposeTranslate, prompt.Translate(text, targetLang, tone)
	})
	if result != nil {
		result.TargetLanguage = targetLang
	}
	s.finish(ctx, span, event, err)

	return result, err
}

// transform runs classification followed by a single transform call.
func (s *AssistService) transform(
	ctx context.Context,
	event *model.AssistEvent,
	text string,
	build func(model.Language, model.Tone) (string, prompt.Prompt),
) (*model.AssistResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	apiKey, err := s.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	lang, tone := s.classify(ctx, apiKey, text)
	event.Language, event.Tone = lang, tone
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progressFrom(ctx)(model.StageEvent{Stage: model.StageGenerating, Language: lang, Tone: tone})

	purpose, p := build(lang, tone)
	content, err := s.complete(ctx, apiKey, purpose, p, s.opts.TransformTemperature)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ProcessingError{Language: lang, Err: err}
	}

	out, err := cleanOutput(content)
	if err != nil {
		return nil, &ProcessingError{Language: lang, Err: fmt.Errorf("%w: %w", ErrService, err)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &model.AssistResult{Text: out, Language: lang, Tone: tone}, nil
}

// SuggestReplies generates reply suggestions for the latest message of conv.
// When fewer than model.SuggestionCount suggestions survive a single backfill,
// the partial result is returned together with an *IncompleteSuggestionsError.
func (s *AssistService) SuggestReplies(ctx context.Context, conv *model.ConversationContext) (*model.SuggestionResult, error) {
	ctx, span := s.tracer.Start(ctx, "AssistService.SuggestReplies")
	defer span.End()

	event := s.newEvent(ctx, model.OperationSuggest)
	result, err := s.suggest(ctx, event, conv)
	if result != nil {
		event.SuggestionCount = result.Count
		event.Backfilled = result.Backfilled
	}
	s.finish(ctx, span, event, err)

	return result, err
}

func (s *AssistService) suggest(ctx context.Context, event *model.AssistEvent, conv *model.ConversationContext) (*model.SuggestionResult, error) {
	if conv == nil || strings.TrimSpace(conv.LatestMessage.Text) == "" {
		return nil, extract.ErrNoConversationFound
	}

	apiKey, err := s.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	lang, tone := s.classify(ctx, apiKey, conv.LatestMessage.Text)
	event.Language, event.Tone = lang, tone
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress := progressFrom(ctx)
	progress(model.StageEvent{Stage: model.StageGenerating, Language: lang, Tone: tone})

	content, err := s.complete(ctx, apiKey, purposeSuggest, prompt.Suggestions(conv, lang, tone), s.opts.SuggestTemperature)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ProcessingError{Language: lang, Err: err}
	}

	set := model.NewSuggestionSet()
	for _, part := range prompt.SplitSuggestions(content) {
		set.Add(part)
	}

	result := &model.SuggestionResult{Language: lang, Tone: tone}

	// Exactly one backfill attempt.
	if !set.Complete() {
		progress(model.StageEvent{Stage: model.StageBackfilling, Language: lang, Tone: tone})
		added, err := s.backfill(ctx, apiKey, conv, lang, tone, set)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Warn("backfill failed", zap.Int("have", set.Len()), zap.Error(err))
		}
		result.Backfilled = added > 0
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Suggestions = set.Items()
	result.Count = set.Len()
	result.Complete = set.Complete()

	if !result.Complete {
		incomplete := &IncompleteSuggestionsError{Got: result.Count, Want: model.SuggestionCount}
		result.Warning = incomplete.Error()
		return result, incomplete
	}

	return result, nil
}

func (s *AssistService) backfill(
	ctx context.Context,
	apiKey string,
	conv *model.ConversationContext,
	lang model.Language,
	tone model.Tone,
	set *model.SuggestionSet,
) (int, error) {
	p := prompt.Backfill(conv, lang, tone, set.Missing(), set.Items())
	content, err := s.complete(ctx, apiKey, purposeBackfill, p, s.opts.BackfillTemperature)
	if err != nil {
		metrics.RecordBackfill("error")
		return 0, err
	}

	added := 0
	for _, part := range prompt.SplitSuggestions(content) {
		if set.Add(part) {
			added++
		}
	}

	if set.Complete() {
		metrics.RecordBackfill("filled")
	} else {
		metrics.RecordBackfill("short")
	}
	return added, nil
}

// complete performs one completion call bounded by CallTimeout.
func (s *AssistService) complete(ctx context.Context, apiKey, purpose string, p prompt.Prompt, temperature float64) (string, error) {
	ctx, span := s.tracer.Start(ctx, "llm."+purpose)
	defer span.End()

	if s.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()
	}

	resp, err := s.client.Complete(ctx, &llm.CompletionRequest{
		APIKey:      apiKey,
		Model:       s.opts.Model,
		Messages:    p.Messages(),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: temperature,
		Purpose:     purpose,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return "", ErrMissingCredential
		}
		return "", fmt.Errorf("%w: %w", ErrService, err)
	}

	return resp.Content, nil
}

func (s *AssistService) apiKey(ctx context.Context) (string, error) {
	key, err := s.creds.APIKey(ctx)
	if err != nil {
		if errors.Is(err, credential.ErrNotConfigured) {
			return "", ErrMissingCredential
		}
		return "", fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}
	return key, nil
}

func (s *AssistService) newEvent(ctx context.Context, kind model.OperationKind) *model.AssistEvent {
	return &model.AssistEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		InstallID: InstallID(ctx),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// finish records metrics, logs and publishes the event for a finished operation.
func (s *AssistService) finish(ctx context.Context, span trace.Span, event *model.AssistEvent, err error) {
	event.LatencyMs = time.Since(event.CreatedAt).Milliseconds()
	event.Outcome = outcomeOf(ctx, err)
	if err != nil && event.Outcome != model.OutcomePartial {
		event.Reason = reasonOf(err)
	}

	span.SetAttributes(
		attribute.String("kind", string(event.Kind)),
		attribute.String("outcome", string(event.Outcome)),
		attribute.String("language", string(event.Language)),
		attribute.String("tone", string(event.Tone)),
	)
	if event.Outcome == model.OutcomeError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	metrics.RecordOperation(string(event.Kind), string(event.Outcome))

	log := s.logger.WithContext("", event.InstallID)
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("kind", string(event.Kind)),
		zap.String("outcome", string(event.Outcome)),
		zap.String("language", string(event.Language)),
		zap.String("tone", string(event.Tone)),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if event.Outcome == model.OutcomeError {
		log.Error("assist operation failed", append(fields, zap.Error(err))...)
	} else {
		log.Info("assist operation finished", fields...)
	}

	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishEvent(pubCtx, event); err != nil {
		log.Warn("failed to publish assist event", zap.String("event_id", event.ID), zap.Error(err))
	}
}

func outcomeOf(ctx context.Context, err error) model.Outcome {
	switch {
	case err == nil:
		return model.OutcomeSuccess
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return model.OutcomeCancelled
	case errors.Is(err, ErrIncompleteSuggestions):
		return model.OutcomePartial
	default:
		return model.OutcomeError
	}
}

// reasonOf returns a short, content-free failure reason for events.
func reasonOf(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrUnsupportedLanguage):
		return "unsupported_language"
	case errors.Is(err, ErrEmptyText):
		return "empty_text"
	case errors.Is(err, extract.ErrNoConversationFound):
		return "no_conversation"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrService):
		return "service_error"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "internal"
	}
}
