package handler

import (
	"net/http"

	"github.com/capitalize-ai/mail-assistant/internal/model"
)

// Languages handles GET /api/v1/languages
func Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"languages": model.SupportedLanguages(),
		"default":   model.DefaultLanguage,
	})
}
