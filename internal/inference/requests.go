package inference

import "github.com/couchcryptid/heatwave-risk-api/internal/domain"

// SensorNote is the fixed advisory returned by coordinate-mode predictions
// when the caller did not opt into the sensor.
const SensorNote = "Hardware functionality not yet implemented"

// DirectFeaturesRequest carries raw feature values supplied by the caller.
// Fields are pointers so that zero (e.g. no precipitation) is a valid value
// and absence is detectable.
type DirectFeaturesRequest struct {
	TemperatureMax   *float64 `json:"temperature_2m_max" validate:"required"`
	TemperatureMin   *float64 `json:"temperature_2m_min" validate:"required"`
	WindSpeedMax     *float64 `json:"wind_speed_10m_max" validate:"required"`
	WindGustsMax     *float64 `json:"wind_gusts_10m_max" validate:"required"`
	PrecipitationSum *float64 `json:"precipitation_sum" validate:"required"`
}

// CoordinateRequest asks for a prediction at a location. Latitude and
// longitude are required and must be non-zero; zero coordinates are rejected
// the same way missing ones are. UseSensor opts into substituting the live
// sensor temperature for the forecast maximum.
type CoordinateRequest struct {
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	UseSensor bool    `json:"use_sensor"`
}

// Prediction is the classification result shared by both assembly modes.
type Prediction struct {
	Risk            domain.RiskLevel  `json:"risk"`
	RiskCode        int               `json:"risk_code"`
	Confidence      domain.Confidence `json:"confidence"`
	Recommendations []string          `json:"recommendations"`
}

// FeaturesUsed echoes the assembled feature values back to the caller so the
// frontend can display what the model actually saw.
type FeaturesUsed struct {
	TemperatureMax   float64 `json:"temperature_max"`
	TemperatureMin   float64 `json:"temperature_min"`
	WindSpeedMax     float64 `json:"wind_speed_max"`
	WindGustsMax     float64 `json:"wind_gusts_max"`
	Precipitation    float64 `json:"precipitation"`
}

// SensorPrediction extends Prediction with feature provenance for
// coordinate-mode calls.
type SensorPrediction struct {
	Prediction
	FeaturesUsed FeaturesUsed        `json:"features_used"`
	DataSource   string              `json:"data_source"`
	SensorStatus domain.SensorStatus `json:"sensor_status"`
	SensorNote   *string             `json:"sensor_note"`
}
