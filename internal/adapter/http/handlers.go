package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/inference"
)

type healthResponse struct {
	Status       string              `json:"status"`
	ModelLoaded  bool                `json:"model_loaded"`
	Message      string              `json:"message"`
	SensorStatus domain.SensorStatus `json:"sensor_status"`
	Version      string              `json:"version"`
}

type ingestRequest struct {
	Temperature *float64 `json:"temperature"`
}

type ingestResponse struct {
	Status      string  `json:"status"`
	Temperature float64 `json:"temperature"`
	ReceivedAt  string  `json:"received_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "running",
		ModelLoaded:  s.predictor.CheckReadiness(r.Context()) == nil,
		Message:      "Heatwave Risk Prediction API",
		SensorStatus: s.sensors.Read().Status,
		Version:      Version,
	})
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if err := s.predictor.CheckReadiness(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleSensorIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &domain.ValidationError{Message: "invalid request body"})
		return
	}
	if req.Temperature == nil {
		s.writeError(w, r, domain.NewValidationError("temperature"))
		return
	}

	reading := s.sensors.Ingest(r.Context(), *req.Temperature)
	writeJSON(w, http.StatusOK, ingestResponse{
		Status:      "success",
		Temperature: *reading.Temperature,
		ReceivedAt:  reading.ObservedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleSensorRead(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sensors.Read())
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req inference.DirectFeaturesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &domain.ValidationError{Message: "invalid request body"})
		return
	}

	prediction, err := s.predictor.PredictDirect(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handlePredictWithSensor(w http.ResponseWriter, r *http.Request) {
	var req inference.CoordinateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, &domain.ValidationError{Message: "invalid request body"})
		return
	}

	prediction, err := s.predictor.PredictAt(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}

// writeError maps domain errors onto HTTP status codes: invalid input is the
// caller's fault, a failed forecast fetch is the upstream's, and a missing
// model means the service cannot predict at all.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var validationErr *domain.ValidationError
	var upstreamErr *domain.UpstreamError
	var modelErr *domain.ModelUnavailableError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
	case errors.As(err, &modelErr):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
