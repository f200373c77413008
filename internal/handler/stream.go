package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/mail-assistant/internal/middleware"
	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/internal/service"
	"github.com/capitalize-ai/mail-assistant/pkg/metrics"
)

// SuggestStream handles POST /api/v1/suggestions/stream
// It streams stage events while the chain runs, then the suggestions.
func (h *AssistHandler) SuggestStream(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestRequest
	if err := decodeBody(w, r, h.htmlBodyLimit(), &req); err != nil {
		validationError(w, err)
		return
	}

	conv, err := h.conversation(&req)
	if err != nil {
		h.writeConversationError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	release, err := h.guard.Acquire(req.TargetID)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	defer release()

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	ctx := service.WithProgress(h.requestContext(r), func(ev model.StageEvent) {
		sendSSEEvent(w, flusher, "stage", ev)
	})

	result, err := h.assistant.SuggestReplies(ctx, conv)
	if err != nil && !(errors.Is(err, service.ErrIncompleteSuggestions) && result != nil && result.Count > 0) {
		if ctx.Err() != nil {
			h.logger.Info("SSE client disconnected", zap.String("correlation_id", middleware.GetCorrelationID(ctx)))
			return
		}
		h.logFailure(r, "suggest_stream", err)
		_, event := assistError(err)
		sendSSEEvent(w, flusher, "error", event)
		return
	}

	sendSSEEvent(w, flusher, "suggestions", result)
	sendSSEEvent(w, flusher, "done", map[string]bool{"success": true, "complete": result.Complete})
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()

	return nil
}
