package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/heatwave-risk-api/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/heatwave-risk-api/internal/adapter/kafka"
	"github.com/couchcryptid/heatwave-risk-api/internal/adapter/openmeteo"
	"github.com/couchcryptid/heatwave-risk-api/internal/config"
	"github.com/couchcryptid/heatwave-risk-api/internal/inference"
	"github.com/couchcryptid/heatwave-risk-api/internal/model"
	"github.com/couchcryptid/heatwave-risk-api/internal/observability"
	"github.com/couchcryptid/heatwave-risk-api/internal/sensor"
)

func main() {
	// Load a local .env if present; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Load the classifier artifact. A missing or invalid artifact does not
	// prevent startup: the service still serves sensor and health traffic
	// and reports predictions as unavailable.
	var classifier inference.Classifier
	if clf, err := model.Load(cfg.ModelPath); err != nil {
		logger.Error("model load failed, predictions unavailable", "path", cfg.ModelPath, "error", err)
		classifier = model.NewUnavailable(err)
		metrics.ModelLoaded.Set(0)
	} else {
		logger.Info("model loaded", "path", cfg.ModelPath)
		classifier = clf
		metrics.ModelLoaded.Set(1)
	}

	// Reading event publishing is feature-flagged via READING_EVENTS_ENABLED.
	var publisher sensor.ReadingPublisher
	var writer *kafkaadapter.Writer
	if cfg.ReadingEventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("reading events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReadingsTopic)
	} else {
		logger.Info("reading events disabled")
	}

	tracker := sensor.NewTracker(cfg.SensorStaleAfter, nil, publisher, logger, metrics)
	forecasts := openmeteo.NewClient(cfg.ForecastBaseURL, cfg.ForecastTimeout, logger, metrics)
	svc := inference.New(classifier, forecasts, tracker, cfg.AllowStaleSensor, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, tracker, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
