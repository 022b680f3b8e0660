package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// inference service.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // labels: mode={direct,coordinate}, outcome={success,error}
	PredictionsByRisk  *prometheus.CounterVec // labels: risk={Low,Medium,High}
	PredictionDuration prometheus.Histogram

	// Forecast provider metrics.
	ForecastRequests    *prometheus.CounterVec // labels: outcome={success,error}
	ForecastAPIDuration prometheus.Histogram

	// Sensor metrics.
	SensorIngests      prometheus.Counter
	SensorTemperature  prometheus.Gauge
	ReadingEventsTotal *prometheus.CounterVec // labels: outcome={published,error}

	ModelLoaded prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatwave_api",
			Name:      "predictions_total",
			Help:      "Total prediction requests by assembly mode and outcome.",
		}, []string{"mode", "outcome"}),
		PredictionsByRisk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatwave_api",
			Name:      "predictions_by_risk_total",
			Help:      "Successful predictions by resulting risk label.",
		}, []string{"risk"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatwave_api",
			Name:      "prediction_duration_seconds",
			Help:      "End-to-end duration of a prediction, including any forecast fetch.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatwave_api",
			Name:      "forecast_requests_total",
			Help:      "Open-Meteo forecast requests by outcome.",
		}, []string{"outcome"}),
		ForecastAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatwave_api",
			Name:      "forecast_api_duration_seconds",
			Help:      "Open-Meteo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SensorIngests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatwave_api",
			Name:      "sensor_ingests_total",
			Help:      "Total accepted sensor temperature readings.",
		}),
		SensorTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatwave_api",
			Name:      "sensor_temperature_celsius",
			Help:      "Most recently ingested sensor temperature.",
		}),
		ReadingEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatwave_api",
			Name:      "reading_events_total",
			Help:      "Sensor-reading events published to Kafka by outcome.",
		}, []string{"outcome"}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatwave_api",
			Name:      "model_loaded",
			Help:      "1 when a classifier artifact is loaded, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionsByRisk,
		m.PredictionDuration,
		m.ForecastRequests,
		m.ForecastAPIDuration,
		m.SensorIngests,
		m.SensorTemperature,
		m.ReadingEventsTotal,
		m.ModelLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PredictionsTotal:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heatwave_api", Name: "predictions_total"}, []string{"mode", "outcome"}),
		PredictionsByRisk:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heatwave_api", Name: "predictions_by_risk_total"}, []string{"risk"}),
		PredictionDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "heatwave_api", Name: "prediction_duration_seconds"}),
		ForecastRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heatwave_api", Name: "forecast_requests_total"}, []string{"outcome"}),
		ForecastAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "heatwave_api", Name: "forecast_api_duration_seconds"}),
		SensorIngests:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "heatwave_api", Name: "sensor_ingests_total"}),
		SensorTemperature:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "heatwave_api", Name: "sensor_temperature_celsius"}),
		ReadingEventsTotal:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "heatwave_api", Name: "reading_events_total"}, []string{"outcome"}),
		ModelLoaded:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "heatwave_api", Name: "model_loaded"}),
	}
}
