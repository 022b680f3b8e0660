// Package kafka publishes accepted sensor readings to a Kafka topic so
// downstream consumers (dashboards, alerting) can follow the live feed.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/heatwave-risk-api/internal/config"
	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
)

// Writer produces sensor reading events to a Kafka topic.
// It implements sensor.ReadingPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured readings topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReadingsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReading serializes and publishes one sensor reading.
func (w *Writer) PublishReading(ctx context.Context, reading domain.SensorReading) error {
	msg, err := serializeReading(reading)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeReading marshals a SensorReading into a Kafka message keyed by
// observation time so per-key compaction keeps the latest value.
func serializeReading(reading domain.SensorReading) (kafkago.Message, error) {
	if reading.ObservedAt == nil {
		return kafkago.Message{}, fmt.Errorf("serialize sensor reading: missing observation time")
	}
	data, err := json.Marshal(reading)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize sensor reading: %w", err)
	}
	observedAt := reading.ObservedAt.Format(time.RFC3339Nano)
	return kafkago.Message{
		Key:   []byte(observedAt),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(domain.DataSourceSensor)},
			{Key: "observed_at", Value: []byte(observedAt)},
		},
	}, nil
}
