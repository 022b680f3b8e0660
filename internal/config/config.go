package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Classifier artifact.
	ModelPath string

	// Forecast provider.
	ForecastBaseURL string
	ForecastTimeout time.Duration

	// Sensor liveness and substitution policy.
	SensorStaleAfter time.Duration
	AllowStaleSensor bool

	// Optional sensor-reading event stream.
	ReadingEventsEnabled bool
	KafkaBrokers         []string
	KafkaReadingsTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	forecastTimeout, err := parseDuration("FORECAST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	staleAfter, err := parseDuration("SENSOR_STALE_AFTER", domain.DefaultStaleAfter)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ModelPath: envOrDefault("MODEL_PATH", "data/model/heatwave_risk_model.json"),

		ForecastBaseURL: envOrDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		ForecastTimeout: forecastTimeout,

		SensorStaleAfter: staleAfter,
		AllowStaleSensor: envOrDefault("ALLOW_STALE_SENSOR", "true") == "true",

		ReadingEventsEnabled: os.Getenv("READING_EVENTS_ENABLED") == "true",
		KafkaBrokers:         parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReadingsTopic:   envOrDefault("KAFKA_READINGS_TOPIC", "sensor-readings"),
	}

	if cfg.ModelPath == "" {
		return nil, errors.New("MODEL_PATH is required")
	}
	if cfg.ForecastBaseURL == "" {
		return nil, errors.New("FORECAST_BASE_URL is required")
	}
	if cfg.ReadingEventsEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("READING_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaReadingsTopic == "" {
			return nil, errors.New("READING_EVENTS_ENABLED is true but KAFKA_READINGS_TOPIC is not set")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
