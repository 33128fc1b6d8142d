package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/checkfox/lead_router/internal/config"
	"github.com/checkfox/lead_router/internal/engine"
	"github.com/checkfox/lead_router/internal/handlers"
	"github.com/checkfox/lead_router/internal/logger"
	"github.com/checkfox/lead_router/internal/notify"
	"github.com/checkfox/lead_router/internal/rules"
	"github.com/checkfox/lead_router/internal/schedule"
	"github.com/checkfox/lead_router/internal/transport"
	"github.com/gorilla/mux"
)

func main() {
	// Initialize structured logger
	logger.Init()
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Info(ctx, "Lead router starting",
		"host", cfg.API.Host,
		"port", cfg.API.Port)

	// Load routing rules from file if configured, otherwise use defaults
	ruleSet := rules.DefaultRules(cfg)
	if cfg.RulesFile != "" {
		ruleSet, err = config.LoadRoutingRules(cfg.RulesFile)
		if err != nil {
			log.Fatalf("Failed to load routing rules: %v", err)
		}
		logger.Info(ctx, "Routing rules loaded from file",
			"file", cfg.RulesFile,
			"rule_count", len(ruleSet))
	}

	// Select transports once at composition time. SMS and email are
	// external capabilities; without real integrations configured, the
	// recording mock stands in. Chat goes to a webhook when one is set.
	mock := transport.NewMock()
	var sms transport.SMSSender = mock
	var email transport.EmailSender = mock
	var chat transport.ChatSender = mock
	if webhookURL := os.Getenv("CHAT_WEBHOOK_URL"); webhookURL != "" {
		chat = transport.NewWebhookChatClient(webhookURL, 10*time.Second)
		logger.Info(ctx, "Chat transport using webhook")
	}

	// Scheduler for deferred (non-business-hours) notifications
	scheduler := schedule.NewScheduler()
	defer scheduler.Stop()

	dispatcher, err := notify.NewDispatcher(cfg, sms, chat, email, scheduler)
	if err != nil {
		log.Fatalf("Failed to initialize dispatcher: %v", err)
	}
	defer dispatcher.Close()

	routingEngine, err := engine.New(cfg, ruleSet, dispatcher)
	if err != nil {
		log.Fatalf("Failed to initialize routing engine: %v", err)
	}

	logger.Info(ctx, "Routing engine initialized", "rule_count", len(ruleSet))

	// Initialize handlers and middleware
	estimateHandler := handlers.NewEstimateHandler(routingEngine)
	recoveryMiddleware := handlers.NewRecoveryMiddleware()

	// Set up HTTP routes
	router := mux.NewRouter()
	router.HandleFunc("/webhooks/estimates",
		recoveryMiddleware.Recover(estimateHandler.HandleEstimateWebhook)).
		Methods(http.MethodPost)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutdown signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(ctx, "Server shutdown error", err)
	}

	// Pending deferred notifications are dropped: there is no durable
	// queue, and at-least-once delivery is not guaranteed.
	if pending := dispatcher.Pending(); pending > 0 {
		logger.Warn(ctx, "Dropping pending deferred notifications", "count", pending)
	}

	logger.Info(ctx, "Shutdown complete")
}
