package model

import (
	"time"
)

// OperationKind identifies an assistant operation.
type OperationKind string

const (
	OperationImprove   OperationKind = "improve"
	OperationTranslate OperationKind = "translate"
	OperationSuggest   OperationKind = "suggest"
)

// Outcome is the final state of an assistant operation.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomePartial   Outcome = "partial"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
)

// AssistEvent records a finished assistant operation. Text content is never included.
type AssistEvent struct {
	ID              string        `json:"id"`
	InstallID       string        `json:"install_id,omitempty"`
	Kind            OperationKind `json:"kind"`
	Outcome         Outcome       `json:"outcome"`
	Language        Language      `json:"language,omitempty"`
	TargetLanguage  Language      `json:"target_language,omitempty"`
	Tone            Tone          `json:"tone,omitempty"`
	SuggestionCount int           `json:"suggestion_count,omitempty"`
	Backfilled      bool          `json:"backfilled,omitempty"`
	Reason          string        `json:"reason,omitempty"`
	LatencyMs       int64         `json:"latency_ms"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Stage is a step of an assistant operation, reported to progress observers.
type Stage string

const (
	StageDetectingLanguage  Stage = "detecting_language"
	StageDetectingFormality Stage = "detecting_formality"
	StageGenerating         Stage = "generating"
	StageBackfilling        Stage = "backfilling"
)

// StageEvent is streamed to clients while an operation runs.
type StageEvent struct {
	Stage    Stage    `json:"stage"`
	Language Language `json:"language,omitempty"`
	Tone     Tone     `json:"tone,omitempty"`
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
