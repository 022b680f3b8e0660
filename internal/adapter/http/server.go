// Package http exposes the prediction, sensor, and operational endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/inference"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Predictor runs the inference pipeline.
type Predictor interface {
	PredictDirect(ctx context.Context, req inference.DirectFeaturesRequest) (*inference.Prediction, error)
	PredictAt(ctx context.Context, req inference.CoordinateRequest) (*inference.SensorPrediction, error)
	CheckReadiness(ctx context.Context) error
}

// SensorStore accepts and serves sensor temperature readings.
type SensorStore interface {
	Ingest(ctx context.Context, temperature float64) domain.SensorReading
	Read() domain.SensorReading
}

// Server wires the API routes onto a net/http server.
type Server struct {
	httpServer *http.Server
	predictor  Predictor
	sensors    SensorStore
	logger     *slog.Logger
}

// NewServer creates the API server with all routes mounted.
func NewServer(addr string, predictor Predictor, sensors SensorStore, logger *slog.Logger) *Server {
	s := &Server{
		predictor: predictor,
		sensors:   sensors,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// The health payload is also served at the root so existing frontends
	// polling "/" keep working.
	r.Get("/", s.handleHealth)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReadiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/sensor/temperature", s.handleSensorIngest)
	r.Get("/sensor/temperature", s.handleSensorRead)

	r.Post("/predict", s.handlePredict)
	r.Post("/predict-with-sensor", s.handlePredictWithSensor)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
