// Package inference assembles feature vectors from sensor and forecast data,
// runs the risk classifier, and attaches safety recommendations.
package inference

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/observability"
)

// Classifier is the narrow contract a trained model must satisfy: five
// numeric inputs in training order, a 3-class distribution out, code = argmax.
type Classifier interface {
	Classify(features domain.FeatureVector) (code int, dist domain.Distribution, err error)
	// Ready reports whether predictions can be served; an unloaded model
	// returns its load error here.
	Ready() error
}

// SensorSource exposes the current sensor snapshot.
type SensorSource interface {
	Read() domain.SensorReading
}

// Service orchestrates the inference pipeline for both assembly modes.
type Service struct {
	classifier Classifier
	forecasts  domain.ForecastProvider
	sensors    SensorSource

	// allowStaleSensor controls substitution: when true a sensor value is
	// used even after its reading has gone stale. Set false to make
	// substitution honor liveness.
	allowStaleSensor bool

	validate *validator.Validate
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service with the given collaborators.
func New(classifier Classifier, forecasts domain.ForecastProvider, sensors SensorSource, allowStaleSensor bool, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		classifier:       classifier,
		forecasts:        forecasts,
		sensors:          sensors,
		allowStaleSensor: allowStaleSensor,
		validate:         newValidator(),
		logger:           logger,
		metrics:          metrics,
	}
}

// CheckReadiness reports whether the classifier artifact is loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	return s.classifier.Ready()
}

// PredictDirect classifies caller-supplied feature values. The values pass
// through unchanged; only presence is validated.
func (s *Service) PredictDirect(_ context.Context, req DirectFeaturesRequest) (*Prediction, error) {
	start := time.Now()

	if err := checkRequest(s.validate, req); err != nil {
		s.metrics.PredictionsTotal.WithLabelValues("direct", "error").Inc()
		return nil, err
	}

	features := domain.NewFeatureVector(
		*req.TemperatureMax,
		*req.TemperatureMin,
		*req.WindSpeedMax,
		*req.WindGustsMax,
		*req.PrecipitationSum,
	)

	prediction, err := s.classify(features)
	if err != nil {
		s.metrics.PredictionsTotal.WithLabelValues("direct", "error").Inc()
		return nil, err
	}

	s.metrics.PredictionsTotal.WithLabelValues("direct", "success").Inc()
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("prediction served", "mode", "direct", "risk", prediction.Risk)
	return prediction, nil
}

// PredictAt fetches a one-day forecast for the coordinates, optionally
// substitutes the sensor temperature for the forecast maximum, and
// classifies the result.
//
// The substitution uses the sensor value whenever one exists, regardless of
// liveness, unless the service was configured to honor staleness. Either
// way the response reports the sensor status observed at assembly time.
func (s *Service) PredictAt(ctx context.Context, req CoordinateRequest) (*SensorPrediction, error) {
	start := time.Now()

	if err := checkRequest(s.validate, req); err != nil {
		s.metrics.PredictionsTotal.WithLabelValues("coordinate", "error").Inc()
		return nil, err
	}

	reading := s.sensors.Read()

	day, err := s.forecasts.FetchDaily(ctx, req.Latitude, req.Longitude)
	if err != nil {
		s.metrics.PredictionsTotal.WithLabelValues("coordinate", "error").Inc()
		return nil, err
	}

	temperatureMax := day.TemperatureMax
	dataSource := domain.DataSourceOpenMeteo
	if req.UseSensor && reading.HasTemperature() && (s.allowStaleSensor || reading.Status == domain.SensorConnected) {
		temperatureMax = *reading.Temperature
		dataSource = domain.DataSourceSensor
	}

	features := domain.NewFeatureVector(
		temperatureMax,
		day.TemperatureMin,
		day.WindSpeedMax,
		day.WindGustsMax,
		day.PrecipitationSum,
	)

	prediction, err := s.classify(features)
	if err != nil {
		s.metrics.PredictionsTotal.WithLabelValues("coordinate", "error").Inc()
		return nil, err
	}

	var note *string
	if !req.UseSensor {
		fixed := SensorNote
		note = &fixed
	}

	result := &SensorPrediction{
		Prediction: *prediction,
		FeaturesUsed: FeaturesUsed{
			TemperatureMax: features.TemperatureMax(),
			TemperatureMin: features.TemperatureMin(),
			WindSpeedMax:   features.WindSpeedMax(),
			WindGustsMax:   features.WindGustsMax(),
			Precipitation:  features.PrecipitationSum(),
		},
		DataSource:   dataSource,
		SensorStatus: reading.Status,
		SensorNote:   note,
	}

	s.metrics.PredictionsTotal.WithLabelValues("coordinate", "success").Inc()
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("prediction served",
		"mode", "coordinate",
		"risk", result.Risk,
		"data_source", dataSource,
		"sensor_status", reading.Status,
	)
	return result, nil
}

// classify runs the model and maps the class code to a label and its
// recommendation list.
func (s *Service) classify(features domain.FeatureVector) (*Prediction, error) {
	code, dist, err := s.classifier.Classify(features)
	if err != nil {
		return nil, err
	}

	level, ok := domain.RiskFromCode(code)
	if !ok {
		return nil, fmt.Errorf("classifier returned out-of-range class %d", code)
	}

	s.metrics.PredictionsByRisk.WithLabelValues(string(level)).Inc()
	return &Prediction{
		Risk:            level,
		RiskCode:        code,
		Confidence:      domain.ConfidenceFromDistribution(dist),
		Recommendations: domain.Recommendations(level),
	}, nil
}
