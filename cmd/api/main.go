package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avenirlabs/leadgate/internal/api/router"
	appconfig "github.com/avenirlabs/leadgate/internal/config"
	"github.com/avenirlabs/leadgate/internal/delivery"
	"github.com/avenirlabs/leadgate/internal/http/handlers"
	"github.com/avenirlabs/leadgate/internal/observability/metrics"
	"github.com/avenirlabs/leadgate/internal/ratelimit"
	"github.com/avenirlabs/leadgate/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadgate API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	registry := prometheus.NewRegistry()
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	limiter := ratelimit.NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow)
	telegram := delivery.NewTelegramChannel(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramBaseURL, logger)
	crm := delivery.NewCRMChannel(cfg.CRMWebhookURL, cfg.CRMWebhookToken, logger)
	dispatcher := delivery.NewDispatcher(telegram, crm, cfg.DeliveryTimeout, intakeMetrics, logger)

	if !telegram.Configured() {
		logger.Warn("telegram relay not configured, channel will be skipped")
	}
	if !crm.Configured() {
		logger.Warn("crm webhook not configured, channel will be skipped")
	}

	intakeHandler := handlers.NewIntakeHandler(limiter, dispatcher, intakeMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		IntakeHandler:      intakeHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
