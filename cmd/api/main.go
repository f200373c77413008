// Package main is the entry point for the mail assistant API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capitalize-ai/mail-assistant/internal/config"
	"github.com/capitalize-ai/mail-assistant/internal/credential"
	"github.com/capitalize-ai/mail-assistant/internal/extract"
	"github.com/capitalize-ai/mail-assistant/internal/handler"
	"github.com/capitalize-ai/mail-assistant/internal/llm"
	"github.com/capitalize-ai/mail-assistant/internal/middleware"
	natsclient "github.com/capitalize-ai/mail-assistant/internal/nats"
	"github.com/capitalize-ai/mail-assistant/internal/service"
	"github.com/capitalize-ai/mail-assistant/pkg/logger"
	"github.com/capitalize-ai/mail-assistant/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting mail assistant API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "mail-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Audit events are optional; without NATS the service runs stateless.
	var (
		publisher service.EventPublisher
		broker    handler.ConnectionChecker
	)
	if cfg.NATSEnabled {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		natsClient, err := natsclient.Connect(connectCtx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		cancel()
		if err != nil {
			log.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer natsClient.Close()

		streamManager := natsclient.NewStreamManager(natsClient)
		if err := streamManager.EnsureStream(ctx); err != nil {
			log.Fatal("failed to ensure stream", zap.Error(err))
		}
		publisher = streamManager
		broker = natsClient
	}

	// Initialize completion client
	llmClient, err := llm.NewClient(llm.Provider(cfg.CompletionProvider), llm.Options{
		BaseURL:      cfg.CompletionBaseURL,
		DefaultModel: cfg.CompletionModel,
	})
	if err != nil {
		log.Fatal("failed to create completion client", zap.Error(err))
	}

	// The per-request key wins over the server key.
	creds := credential.Chain{credential.NewEnvSource(cfg.CompletionAPIKeyEnv)}
	if cfg.AllowHeaderCredential {
		creds = append(credential.Chain{credential.RequestSource{}}, creds...)
	}
	if _, err := creds.APIKey(ctx); err != nil {
		log.Warn("no server completion key configured; requests must send "+middleware.CompletionKeyHeader,
			zap.String("env", cfg.CompletionAPIKeyEnv))
	}

	// Initialize services
	assistSvc := service.NewAssistService(llmClient, creds, service.AssistOptions{
		Model:                  cfg.CompletionModel,
		MaxTokens:              cfg.CompletionMaxTokens,
		ClassifyTemperature:    cfg.ClassifyTemperature,
		TransformTemperature:   cfg.TransformTemperature,
		SuggestTemperature:     cfg.SuggestTemperature,
		BackfillTemperature:    cfg.BackfillTemperature,
		CallTimeout:            cfg.CompletionTimeout,
		ParallelClassification: cfg.ParallelClassification,
	}, publisher, log)
	extractor := extract.NewExtractor(extract.DefaultSelectors(), log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(broker, creds, cfg.AllowHeaderCredential)
	assistHandler := handler.NewAssistHandler(assistSvc, extractor, service.NewTargetGuard(), handler.Limits{
		MaxTextLength: cfg.MaxTextLength,
		MaxHTMLBytes:  cfg.MaxHTMLBytes,
	}, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(middleware.Auth(cfg.JWTSecret))
		}
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Use(middleware.CompletionKey(cfg.AllowHeaderCredential))

		r.Get("/languages", handler.Languages)
		r.Post("/context", assistHandler.Context)

		r.Post("/improve", assistHandler.Improve)
		r.Post("/translate", assistHandler.Translate)

		r.Post("/suggestions", assistHandler.Suggest)
		r.Post("/suggestions/stream", assistHandler.SuggestStream)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
