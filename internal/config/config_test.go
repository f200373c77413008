package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COMPLETION_MODEL", "")
	t.Setenv("CLASSIFY_TEMPERATURE", "")

	cfg := Load()

	assert.Equal(t, "llama-3.1-8b-instant", cfg.CompletionModel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.CompletionBaseURL)
	assert.InDelta(t, 0.1, cfg.ClassifyTemperature, 1e-9)
	assert.InDelta(t, 0.7, cfg.SuggestTemperature, 1e-9)
	assert.InDelta(t, 0.8, cfg.BackfillTemperature, 1e-9)
	assert.Equal(t, 20*time.Second, cfg.CompletionTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COMPLETION_TIMEOUT", "5s")
	t.Setenv("SUGGEST_TEMPERATURE", "0.75")
	t.Setenv("PARALLEL_CLASSIFICATION", "true")
	t.Setenv("ALLOWED_ORIGINS", "chrome-extension://abc, ,https://mail.example.com")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.CompletionTimeout)
	assert.InDelta(t, 0.75, cfg.SuggestTemperature, 1e-9)
	assert.True(t, cfg.ParallelClassification)
	assert.Equal(t, []string{"chrome-extension://abc", "https://mail.example.com"}, cfg.AllowedOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("COMPLETION_MAX_TOKENS", "lots")
	t.Setenv("BACKFILL_TEMPERATURE", "warm")

	cfg := Load()

	assert.Equal(t, 1000, cfg.CompletionMaxTokens)
	assert.InDelta(t, 0.8, cfg.BackfillTemperature, 1e-9)
}
