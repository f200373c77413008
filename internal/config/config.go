// Package config provides environment configuration for the mail assistant.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	AllowedOrigins     []string

	// Completion service settings
	CompletionProvider   string
	CompletionAPIKeyEnv  string
	CompletionBaseURL    string
	CompletionModel      string
	CompletionTimeout    time.Duration
	CompletionMaxTokens  int
	ClassifyTemperature  float64
	TransformTemperature float64
	SuggestTemperature   float64
	BackfillTemperature  float64

	// ParallelClassification issues language and formality detection concurrently.
	ParallelClassification bool
	// AllowHeaderCredential lets clients supply their own key via X-Completion-Key.
	AllowHeaderCredential bool

	// Input limits
	MaxTextLength int
	MaxHTMLBytes  int64

	// NATS settings
	NATSEnabled  bool
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// Auth
	AuthEnabled bool
	JWTSecret   string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from the environment, after applying a .env file if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
		AllowedOrigins:     getListEnv("ALLOWED_ORIGINS", []string{"chrome-extension://*", "https://mail.google.com"}),

		// Completion service
		CompletionProvider:   getEnv("COMPLETION_PROVIDER", "openai"),
		CompletionAPIKeyEnv:  getEnv("COMPLETION_API_KEY_ENV", "COMPLETION_API_KEY"),
		CompletionBaseURL:    getEnv("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1"),
		CompletionModel:      getEnv("COMPLETION_MODEL", "llama-3.1-8b-instant"),
		CompletionTimeout:    getDurationEnv("COMPLETION_TIMEOUT", 20*time.Second),
		CompletionMaxTokens:  getIntEnv("COMPLETION_MAX_TOKENS", 1000),
		ClassifyTemperature:  getFloatEnv("CLASSIFY_TEMPERATURE", 0.1),
		TransformTemperature: getFloatEnv("TRANSFORM_TEMPERATURE", 0.1),
		SuggestTemperature:   getFloatEnv("SUGGEST_TEMPERATURE", 0.7),
		BackfillTemperature:  getFloatEnv("BACKFILL_TEMPERATURE", 0.8),

		ParallelClassification: getBoolEnv("PARALLEL_CLASSIFICATION", false),
		AllowHeaderCredential:  getBoolEnv("ALLOW_HEADER_CREDENTIAL", true),

		// Limits
		MaxTextLength: getIntEnv("MAX_TEXT_LENGTH", 20000),
		MaxHTMLBytes:  int64(getIntEnv("MAX_HTML_BYTES", 5*1024*1024)),

		// NATS
		NATSEnabled:  getBoolEnv("NATS_ENABLED", false),
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),

		// Auth
		AuthEnabled: getBoolEnv("AUTH_ENABLED", false),
		JWTSecret:   getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
