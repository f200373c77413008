package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/mail-assistant/internal/credential"
	"github.com/capitalize-ai/mail-assistant/pkg/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func installIDHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetInstallID(r.Context())))
	})
}

func TestAuth(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, testSecret, "install-1", time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + valid, http.StatusOK, "install-1"},
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"bad scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization header format"},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, "other", "install-1", time.Now().Add(time.Hour)), http.StatusUnauthorized, "invalid token"},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, "install-1", time.Now().Add(-time.Hour)), http.StatusUnauthorized, "invalid token"},
		{"no subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, "", time.Now().Add(time.Hour)), http.StatusUnauthorized, "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/improve", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(testSecret)(installIDHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestCompletionKey(t *testing.T) {
	handler := func(enabled bool) http.Handler {
		return CompletionKey(enabled)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(credential.RequestKey(r.Context())))
		}))
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(CompletionKeyHeader, "gsk_user")

	rec := httptest.NewRecorder()
	handler(true).ServeHTTP(rec, req)
	assert.Equal(t, "gsk_user", rec.Body.String())

	rec = httptest.NewRecorder()
	handler(false).ServeHTTP(rec, req)
	assert.Empty(t, rec.Body.String())
}

func TestLoggingSetsCorrelationID(t *testing.T) {
	var seen string
	handler := Logging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(CorrelationIDHeader, "corr-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "corr-1", seen)
	assert.Equal(t, "corr-1", rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/improve", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateText("Hallo", 10))
	assert.NoError(t, ValidateText("ääääää", 6))
	assert.Error(t, ValidateText("  ", 10))
	assert.Error(t, ValidateText("too long text", 5))
	assert.Error(t, ValidateText("bad \xff", 0))
}

func TestValidateHTML(t *testing.T) {
	assert.NoError(t, ValidateHTML("<div>hi</div>", 100))
	assert.Error(t, ValidateHTML("", 100))
	assert.Error(t, ValidateHTML(strings.Repeat("a", 101), 100))
}

func TestValidateTargetID(t *testing.T) {
	assert.NoError(t, ValidateTargetID(""))
	assert.NoError(t, ValidateTargetID(":r1g:"))
	assert.Error(t, ValidateTargetID("has space"))
	assert.Error(t, ValidateTargetID(strings.Repeat("x", 129)))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
