package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/internal/prompt"
	"github.com/capitalize-ai/mail-assistant/pkg/metrics"
)

// classify detects language and formality of text. Failures fall back to
// DefaultLanguage and ToneFormal and are never returned.
func (s *AssistService) classify(ctx context.Context, apiKey, text string) (model.Language, model.Tone) {
	progress := progressFrom(ctx)

	if !s.opts.ParallelClassification {
		progress(model.StageEvent{Stage: model.StageDetectingLanguage})
		lang := s.detectLanguage(ctx, apiKey, text)

		progress(model.StageEvent{Stage: model.StageDetectingFormality, Language: lang})
		tone := s.detectFormality(ctx, apiKey, text, lang)
		return lang, tone
	}

	// The language is unknown while formality runs, so it uses the English classifier.
	progress(model.StageEvent{Stage: model.StageDetectingLanguage})
	progress(model.StageEvent{Stage: model.StageDetectingFormality})

	var (
		wg   sync.WaitGroup
		lang model.Language
		tone model.Tone
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lang = s.detectLanguage(ctx, apiKey, text)
	}()
	go func() {
		defer wg.Done()
		tone = s.detectFormality(ctx, apiKey, text, model.DefaultLanguage)
	}()
	wg.Wait()

	return lang, tone
}

func (s *AssistService) detectLanguage(ctx context.Context, apiKey, text string) model.Language {
	content, err := s.complete(ctx, apiKey, purposeClassifyLanguage, prompt.LanguageDetection(text), s.opts.ClassifyTemperature)
	if err != nil {
		s.fallback(ctx, "language", "detection failed", zap.Error(err))
		return model.DefaultLanguage
	}

	lang, ok := parseLanguageAnswer(content)
	if !ok {
		s.fallback(ctx, "language", "unsupported answer", zap.String("answer", content))
		return model.DefaultLanguage
	}
	return lang
}

func (s *AssistService) detectFormality(ctx context.Context, apiKey, text string, lang model.Language) model.Tone {
	content, err := s.complete(ctx, apiKey, purposeClassifyFormality, prompt.FormalityDetection(text, lang), s.opts.ClassifyTemperature)
	if err != nil {
		s.fallback(ctx, "formality", "detection failed", zap.Error(err))
		return model.ToneFormal
	}

	tone, ok := parseToneAnswer(content)
	if !ok {
		s.fallback(ctx, "formality", "unrecognized answer", zap.String("answer", content))
		return model.ToneFormal
	}
	return tone
}

func (s *AssistService) fallback(ctx context.Context, classifier, reason string, fields ...zap.Field) {
	// A cancelled request is not a classifier failure.
	if ctx.Err() != nil {
		return
	}
	metrics.RecordFallback(classifier)
	s.logger.Warn("classification fallback",
		append([]zap.Field{zap.String("classifier", classifier), zap.String("reason", reason)}, fields...)...)
}

// parseLanguageAnswer accepts a bare code, optionally quoted or followed by punctuation.
func parseLanguageAnswer(content string) (model.Language, bool) {
	answer := strings.Trim(strings.TrimSpace(content), "\"'`.,;: \n")
	return model.ParseLanguage(answer)
}

func parseToneAnswer(content string) (model.Tone, bool) {
	answer := strings.ToLower(strings.TrimSpace(content))
	switch {
	case strings.Contains(answer, "informal"):
		return model.ToneInformal, true
	case strings.Contains(answer, "formal"):
		return model.ToneFormal, true
	default:
		return "", false
	}
}
