package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/capitalize-ai/mail-assistant/internal/extract"
	"github.com/capitalize-ai/mail-assistant/internal/middleware"
	"github.com/capitalize-ai/mail-assistant/internal/model"
	"github.com/capitalize-ai/mail-assistant/internal/service"
	"github.com/capitalize-ai/mail-assistant/pkg/logger"
)

// bodyOverhead covers the JSON envelope around text and html fields.
const bodyOverhead = 64 * 1024

// Assistant is the orchestrator behind the assist endpoints.
type Assistant interface {
	Improve(ctx context.Context, text string) (*model.AssistResult, error)
	Translate(ctx context.Context, text, target string) (*model.AssistResult, error)
	SuggestReplies(ctx context.Context, conv *model.ConversationContext) (*model.SuggestionResult, error)
}

// Limits bounds request payloads.
type Limits struct {
	MaxTextLength int
	MaxHTMLBytes  int64
}

// AssistHandler handles improve, translate, suggestion and context endpoints.
type AssistHandler struct {
	assistant Assistant
	extractor *extract.Extractor
	guard     *service.TargetGuard
	limits    Limits
	logger    *logger.Logger
}

// NewAssistHandler creates a new assist handler.
func NewAssistHandler(
	assistant Assistant,
	extractor *extract.Extractor,
	guard *service.TargetGuard,
	limits Limits,
	log *logger.Logger,
) *AssistHandler {
	return &AssistHandler{
		assistant: assistant,
		extractor: extractor,
		guard:     guard,
		limits:    limits,
		logger:    log,
	}
}

// Improve handles POST /api/v1/improve
func (h *AssistHandler) Improve(w http.ResponseWriter, r *http.Request) {
	var req model.ImproveRequest
	if err := decodeBody(w, r, h.textBodyLimit(), &req); err != nil {
		validationError(w, err)
		return
	}
	if err := h.validateDraft(req.TargetID, req.Text); err != nil {
		validationError(w, err)
		return
	}

	release, err := h.guard.Acquire(req.TargetID)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	defer release()

	result, err := h.assistant.Improve(h.requestContext(r), req.Text)
	if err != nil {
		h.logFailure(r, "improve", err)
		writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Translate handles POST /api/v1/translate
func (h *AssistHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req model.TranslateRequest
	if err := decodeBody(w, r, h.textBodyLimit(), &req); err != nil {
		validationError(w, err)
		return
	}
	if err := h.validateDraft(req.TargetID, req.Text); err != nil {
		validationError(w, err)
		return
	}

	release, err := h.guard.Acquire(req.TargetID)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	defer release()

	result, err := h.assistant.Translate(h.requestContext(r), req.Text, req.TargetLanguage)
	if err != nil {
		h.logFailure(r, "translate", err)
		writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Suggest handles POST /api/v1/suggestions
func (h *AssistHandler) Suggest(w http.ResponseWriter, r *http.Request) {
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

	release, err := h.guard.Acquire(req.TargetID)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	defer release()

	result, err := h.assistant.SuggestReplies(h.requestContext(r), conv)
	if err != nil {
		// A partial set is still useful to the user.
		if errors.Is(err, service.ErrIncompleteSuggestions) && result != nil && result.Count > 0 {
			writeJSON(w, http.StatusOK, result)
			return
		}
		h.logFailure(r, "suggest", err)
		writeAssistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Context handles POST /api/v1/context
func (h *AssistHandler) Context(w http.ResponseWriter, r *http.Request) {
	var req model.ContextRequest
	if err := decodeBody(w, r, h.htmlBodyLimit(), &req); err != nil {
		validationError(w, err)
		return
	}
	if err := middleware.ValidateHTML(req.HTML, h.limits.MaxHTMLBytes); err != nil {
		validationError(w, err)
		return
	}

	conv, err := h.extractor.ExtractHTML(strings.NewReader(req.HTML))
	if err != nil {
		h.writeConversationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// conversation resolves the conversation from the page snapshot, or from a
// pre-extracted context when no snapshot is sent.
func (h *AssistHandler) conversation(req *model.SuggestRequest) (*model.ConversationContext, error) {
	if err := middleware.ValidateTargetID(req.TargetID); err != nil {
		return nil, err
	}

	if req.HTML == "" && req.Context != nil {
		if strings.TrimSpace(req.Context.LatestMessage.Text) == "" {
			return nil, extract.ErrNoConversationFound
		}
		return req.Context, nil
	}

	if err := middleware.ValidateHTML(req.HTML, h.limits.MaxHTMLBytes); err != nil {
		return nil, err
	}
	return h.extractor.ExtractHTML(strings.NewReader(req.HTML))
}

func (h *AssistHandler) writeConversationError(w http.ResponseWriter, err error) {
	if errors.Is(err, extract.ErrNoConversationFound) {
		writeAssistError(w, err)
		return
	}
	validationError(w, err)
}

func (h *AssistHandler) validateDraft(targetID, text string) error {
	if err := middleware.ValidateTargetID(targetID); err != nil {
		return err
	}
	return middleware.ValidateText(text, h.limits.MaxTextLength)
}

// requestContext tags the request context with the caller's install id for events.
func (h *AssistHandler) requestContext(r *http.Request) context.Context {
	ctx := r.Context()
	return service.WithInstallID(ctx, middleware.GetInstallID(ctx))
}

func (h *AssistHandler) logFailure(r *http.Request, op string, err error) {
	ctx := r.Context()
	h.logger.WithContext(middleware.GetCorrelationID(ctx), middleware.GetInstallID(ctx)).
		Warn("assist request failed", zap.String("operation", op), zap.Error(err))
}

func (h *AssistHandler) textBodyLimit() int64 {
	if h.limits.MaxTextLength <= 0 {
		return 0
	}
	// Up to 4 bytes per character plus JSON escaping.
	return int64(h.limits.MaxTextLength)*4*2 + bodyOverhead
}

func (h *AssistHandler) htmlBodyLimit() int64 {
	if h.limits.MaxHTMLBytes <= 0 {
		return 0
	}
	return h.limits.MaxHTMLBytes*2 + bodyOverhead
}
