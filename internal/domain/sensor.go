package domain

import "time"

// DefaultStaleAfter is the maximum age a sensor reading may have while still
// being considered live.
const DefaultStaleAfter = 10 * time.Second

// SensorStatus reports whether the sensor is considered live.
type SensorStatus string

const (
	SensorConnected    SensorStatus = "connected"
	SensorDisconnected SensorStatus = "disconnected"
)

// SensorReading is the single most recent temperature reading pushed by the
// hardware sensor. Temperature and ObservedAt are nil until the first ingest.
// Status is derived, never stored: it reflects the reading's age at the
// moment the snapshot was taken.
type SensorReading struct {
	Temperature *float64     `json:"temperature"`
	ObservedAt  *time.Time   `json:"timestamp"`
	Status      SensorStatus `json:"status"`
}

// HasTemperature reports whether a reading has ever been ingested.
func (r SensorReading) HasTemperature() bool {
	return r.Temperature != nil
}

// SensorStatusAt derives liveness from a reading's age. A nil observedAt
// (nothing ever ingested) is disconnected. Readings aged exactly staleAfter
// are still connected; only strictly older ones flip to disconnected.
func SensorStatusAt(observedAt *time.Time, now time.Time, staleAfter time.Duration) SensorStatus {
	if observedAt == nil {
		return SensorDisconnected
	}
	if now.Sub(*observedAt) > staleAfter {
		return SensorDisconnected
	}
	return SensorConnected
}
