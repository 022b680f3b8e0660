package domain

import "context"

// ForecastDay holds the daily aggregates for a single forecast day.
// Units are passed through from the provider unchanged: temperatures °C,
// wind km/h, precipitation mm.
type ForecastDay struct {
	TemperatureMax   float64 `json:"temperature_2m_max"`
	TemperatureMin   float64 `json:"temperature_2m_min"`
	WindSpeedMax     float64 `json:"wind_speed_10m_max"`
	WindGustsMax     float64 `json:"wind_gusts_10m_max"`
	PrecipitationSum float64 `json:"precipitation_sum"`
}

// ForecastProvider fetches a one-day forecast for a coordinate. Every call is
// a fresh fetch; implementations do not cache or retry.
type ForecastProvider interface {
	FetchDaily(ctx context.Context, latitude, longitude float64) (ForecastDay, error)
}

// Provenance tags for the max-temperature feature.
const (
	DataSourceSensor    = "sensor"
	DataSourceOpenMeteo = "open-meteo"
)
