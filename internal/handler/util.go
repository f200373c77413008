package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/capitalize-ai/mail-assistant/internal/extract"
	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/internal/service"
)

// clientClosedRequest is the nginx status for a client that went away mid-request.
const clientClosedRequest = 499

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeAssistError maps an assist failure to its status and writes it.
func writeAssistError(w http.ResponseWriter, err error) {
	status, event := assistError(err)
	writeJSON(w, status, map[string]string{
		"error": event.Message,
		"code":  event.Code,
	})
}

// assistError returns the HTTP status and the client-facing error for err.
// Service failures carry the localized processing message.
func assistError(err error) (int, *model.ErrorEvent) {
	var processing *service.ProcessingError

	switch {
	case errors.Is(err, service.ErrMissingCredential):
		return http.StatusPreconditionFailed, &model.ErrorEvent{Code: "missing_credential", Message: "completion API key not configured"}
	case errors.Is(err, service.ErrUnsupportedLanguage):
		return http.StatusBadRequest, &model.ErrorEvent{Code: "unsupported_language", Message: err.Error()}
	case errors.Is(err, service.ErrEmptyText):
		return http.StatusBadRequest, &model.ErrorEvent{Code: "validation_error", Message: err.Error()}
	case errors.Is(err, extract.ErrNoConversationFound):
		return http.StatusUnprocessableEntity, &model.ErrorEvent{Code: "no_conversation", Message: err.Error()}
	case errors.Is(err, service.ErrTargetBusy):
		return http.StatusConflict, &model.ErrorEvent{Code: "target_busy", Message: err.Error()}
	case errors.Is(err, service.ErrIncompleteSuggestions):
		return http.StatusBadGateway, &model.ErrorEvent{Code: "incomplete_suggestions", Message: err.Error()}
	case errors.As(err, &processing):
		return http.StatusBadGateway, &model.ErrorEvent{Code: processingCode(err), Message: processing.Error()}
	case errors.Is(err, service.ErrService):
		return http.StatusBadGateway, &model.ErrorEvent{Code: processingCode(err), Message: err.Error()}
	case errors.Is(err, context.Canceled):
		return clientClosedRequest, &model.ErrorEvent{Code: "cancelled", Message: "request cancelled"}
	default:
		return http.StatusInternalServerError, &model.ErrorEvent{Code: "internal_error", Message: "internal error"}
	}
}

func processingCode(err error) string {
	if errors.Is(err, service.ErrMalformedResponse) {
		return "malformed_response"
	}
	return "service_error"
}

func validationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": err.Error(),
		"code":  "validation_error",
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64, v interface{}) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.New("invalid request body")
	}
	return nil
}
