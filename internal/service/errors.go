package service

import (
	"errors"
	"fmt"

	"github.com/capitalize-ai/mail-assistant/internal/llm"
	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/internal/prompt"
)

var (
	// ErrMissingCredential is returned before any network call when no API key is available.
	ErrMissingCredential = errors.New("completion API key not configured")

	// ErrService covers network failures, non-2xx answers and call timeouts.
	ErrService = errors.New("completion service error")

	// ErrMalformedResponse is returned together with ErrService when the payload is unusable.
	ErrMalformedResponse = llm.ErrMalformedResponse

	// ErrUnsupportedLanguage is returned for a translation target outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrIncompleteSuggestions matches *IncompleteSuggestionsError.
	ErrIncompleteSuggestions = errors.New("incomplete suggestions")

	// ErrTargetBusy is returned while another operation runs for the same target.
	ErrTargetBusy = errors.New("operation already in progress for target")

	// ErrEmptyText is returned for blank input text.
	ErrEmptyText = errors.New("text is empty")
)

// IncompleteSuggestionsError reports that fewer suggestions than requested were produced.
type IncompleteSuggestionsError struct {
	Got  int
	Want int
}

func (e *IncompleteSuggestionsError) Error() string {
	return fmt.Sprintf("only %d of %d suggestions generated", e.Got, e.Want)
}

// Is makes errors.Is(err, ErrIncompleteSuggestions) hold.
func (e *IncompleteSuggestionsError) Is(target error) bool {
	return target == ErrIncompleteSuggestions
}

// ProcessingError is a failed transform step. Its message is localized to Language.
type ProcessingError struct {
	Language model.Language
	Err      error
}

func (e *ProcessingError) Error() string {
	return prompt.ProcessingErrorPrefix(e.Language) + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
