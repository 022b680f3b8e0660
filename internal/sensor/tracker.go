// Package sensor tracks the single most recent hardware temperature reading
// and derives its liveness status on demand.
package sensor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/observability"
)

// publishTimeout bounds the optional reading-event publish so a slow broker
// cannot stall the ingest path.
const publishTimeout = 2 * time.Second

// ReadingPublisher forwards accepted readings to downstream consumers.
type ReadingPublisher interface {
	PublishReading(ctx context.Context, reading domain.SensorReading) error
}

// Tracker holds the process-wide sensor state. A single mutex guards the
// (temperature, observedAt) pair so concurrent readers never observe a torn
// write; last write wins with no further ordering guarantee.
type Tracker struct {
	mu          sync.Mutex
	temperature *float64
	observedAt  *time.Time

	staleAfter time.Duration
	clock      clockwork.Clock
	publisher  ReadingPublisher // nil when reading events are disabled
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewTracker creates an empty Tracker. A nil clock selects the real clock;
// tests inject a fake for deterministic staleness. publisher may be nil.
func NewTracker(staleAfter time.Duration, clock clockwork.Clock, publisher ReadingPublisher, logger *slog.Logger, metrics *observability.Metrics) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{
		staleAfter: staleAfter,
		clock:      clock,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
	}
}

// Ingest records a new reading, unconditionally overwriting any prior one,
// and returns the stored reading with status connected. The previous reading
// is permanently discarded. If a publisher is configured the reading is also
// forwarded; publish failures are logged and counted but never fail the
// ingest.
func (t *Tracker) Ingest(ctx context.Context, temperature float64) domain.SensorReading {
	now := t.clock.Now()

	t.mu.Lock()
	t.temperature = &temperature
	t.observedAt = &now
	t.mu.Unlock()

	t.metrics.SensorIngests.Inc()
	t.metrics.SensorTemperature.Set(temperature)
	t.logger.Info("sensor reading ingested", "temperature", temperature, "observed_at", now)

	reading := domain.SensorReading{
		Temperature: &temperature,
		ObservedAt:  &now,
		Status:      domain.SensorConnected,
	}

	if t.publisher != nil {
		publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := t.publisher.PublishReading(publishCtx, reading); err != nil {
			t.logger.Warn("reading event publish failed", "error", err)
			t.metrics.ReadingEventsTotal.WithLabelValues("error").Inc()
		} else {
			t.metrics.ReadingEventsTotal.WithLabelValues("published").Inc()
		}
	}

	return reading
}

// Read returns a snapshot of the current reading with status recomputed
// against the staleness threshold at read time. Elapsed wall-clock time alone
// can flip the status from connected to disconnected between two reads.
func (t *Tracker) Read() domain.SensorReading {
	t.mu.Lock()
	temperature := t.temperature
	observedAt := t.observedAt
	t.mu.Unlock()

	return domain.SensorReading{
		Temperature: temperature,
		ObservedAt:  observedAt,
		Status:      domain.SensorStatusAt(observedAt, t.clock.Now(), t.staleAfter),
	}
}
