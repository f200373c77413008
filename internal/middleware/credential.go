package middleware

import (
	"net/http"

	"github.com/capitalize-ai/mail-assistant/internal/credential"
)

// CompletionKeyHeader carries the user's own completion-service key.
const CompletionKeyHeader = "X-Completion-Key"

// CompletionKey moves the X-Completion-Key header into the request context.
// When disabled the header is ignored and only the server key is used.
func CompletionKey(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := r.Header.Get(CompletionKeyHeader); enabled && key != "" {
				r = r.WithContext(credential.WithRequestKey(r.Context(), key))
			}
			next.ServeHTTP(w, r)
		})
	}
}
