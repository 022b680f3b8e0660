package domain

// FeatureCount is the dimensionality of the classifier input.
const FeatureCount = 5

// FeatureNames lists the feature columns in training order. The names double
// as Open-Meteo daily variable names, which is why the forecast client can
// request exactly these fields. Do not reorder.
var FeatureNames = [FeatureCount]string{
	"temperature_2m_max",
	"temperature_2m_min",
	"wind_speed_10m_max",
	"wind_gusts_10m_max",
	"precipitation_sum",
}

// FeatureVector is a classifier input in training order
// (see the package documentation).
type FeatureVector [FeatureCount]float64

// NewFeatureVector assembles a vector from named values, pinning the argument
// order to the training order.
func NewFeatureVector(temperatureMax, temperatureMin, windSpeedMax, windGustsMax, precipitationSum float64) FeatureVector {
	return FeatureVector{temperatureMax, temperatureMin, windSpeedMax, windGustsMax, precipitationSum}
}

func (v FeatureVector) TemperatureMax() float64   { return v[0] }
func (v FeatureVector) TemperatureMin() float64   { return v[1] }
func (v FeatureVector) WindSpeedMax() float64     { return v[2] }
func (v FeatureVector) WindGustsMax() float64     { return v[3] }
func (v FeatureVector) PrecipitationSum() float64 { return v[4] }
