package inference_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/inference"
	"github.com/couchcryptid/heatwave-risk-api/internal/observability"
)

// --- mocks ---

type stubClassifier struct {
	code     int
	dist     domain.Distribution
	err      error
	readyErr error
	seen     []domain.FeatureVector
}

func (c *stubClassifier) Classify(features domain.FeatureVector) (int, domain.Distribution, error) {
	c.seen = append(c.seen, features)
	if c.err != nil {
		return 0, domain.Distribution{}, c.err
	}
	return c.code, c.dist, nil
}

func (c *stubClassifier) Ready() error { return c.readyErr }

type stubForecast struct {
	day   domain.ForecastDay
	err   error
	calls int
}

func (f *stubForecast) FetchDaily(_ context.Context, _, _ float64) (domain.ForecastDay, error) {
	f.calls++
	if f.err != nil {
		return domain.ForecastDay{}, f.err
	}
	return f.day, nil
}

type stubSensor struct {
	reading domain.SensorReading
}

func (s *stubSensor) Read() domain.SensorReading { return s.reading }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mediumClassifier() *stubClassifier {
	return &stubClassifier{code: 1, dist: domain.Distribution{0.2, 0.7, 0.1}}
}

func sensorReading(temperature float64, status domain.SensorStatus) domain.SensorReading {
	observed := time.Date(2026, time.July, 14, 12, 0, 0, 0, time.UTC)
	return domain.SensorReading{Temperature: &temperature, ObservedAt: &observed, Status: status}
}

func newService(clf inference.Classifier, forecasts domain.ForecastProvider, sensors inference.SensorSource, allowStale bool) *inference.Service {
	return inference.New(clf, forecasts, sensors, allowStale, discardLogger(), observability.NewMetricsForTesting())
}

func ptr(v float64) *float64 { return &v }

func directRequest() inference.DirectFeaturesRequest {
	return inference.DirectFeaturesRequest{
		TemperatureMax:   ptr(35),
		TemperatureMin:   ptr(24),
		WindSpeedMax:     ptr(10),
		WindGustsMax:     ptr(15),
		PrecipitationSum: ptr(0),
	}
}

// --- direct-feature mode ---

func TestPredictDirect_PassesFeaturesThroughInOrder(t *testing.T) {
	clf := mediumClassifier()
	svc := newService(clf, &stubForecast{}, &stubSensor{}, true)

	got, err := svc.PredictDirect(context.Background(), directRequest())
	require.NoError(t, err)

	require.Len(t, clf.seen, 1)
	assert.Equal(t, domain.FeatureVector{35, 24, 10, 15, 0}, clf.seen[0])

	assert.Equal(t, domain.RiskMedium, got.Risk)
	assert.Equal(t, 1, got.RiskCode)
	assert.Equal(t, domain.Confidence{Low: 0.2, Medium: 0.7, High: 0.1}, got.Confidence)
	assert.Equal(t, domain.Recommendations(domain.RiskMedium), got.Recommendations)
}

func TestPredictDirect_ZeroIsAValidValue(t *testing.T) {
	clf := mediumClassifier()
	svc := newService(clf, &stubForecast{}, &stubSensor{}, true)

	req := directRequest()
	req.PrecipitationSum = ptr(0)
	req.WindSpeedMax = ptr(0)

	_, err := svc.PredictDirect(context.Background(), req)
	require.NoError(t, err)
}

func TestPredictDirect_MissingFieldsListed(t *testing.T) {
	svc := newService(mediumClassifier(), &stubForecast{}, &stubSensor{}, true)

	req := directRequest()
	req.TemperatureMin = nil
	req.PrecipitationSum = nil

	_, err := svc.PredictDirect(context.Background(), req)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"temperature_2m_min", "precipitation_sum"}, validationErr.Fields)
}

func TestPredictDirect_ModelUnavailable(t *testing.T) {
	clf := &stubClassifier{err: &domain.ModelUnavailableError{}}
	svc := newService(clf, &stubForecast{}, &stubSensor{}, true)

	_, err := svc.PredictDirect(context.Background(), directRequest())

	var modelErr *domain.ModelUnavailableError
	require.ErrorAs(t, err, &modelErr)
}

// --- coordinate mode ---

func coordinateForecast() *stubForecast {
	return &stubForecast{day: domain.ForecastDay{
		TemperatureMax:   35.0,
		TemperatureMin:   24.0,
		WindSpeedMax:     10.0,
		WindGustsMax:     15.0,
		PrecipitationSum: 1.5,
	}}
}

func TestPredictAt_ForecastOnly(t *testing.T) {
	clf := mediumClassifier()
	forecasts := coordinateForecast()
	svc := newService(clf, forecasts, &stubSensor{}, true)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{Latitude: 6.25, Longitude: -75.56})
	require.NoError(t, err)

	assert.Equal(t, 1, forecasts.calls)
	require.Len(t, clf.seen, 1)
	assert.Equal(t, domain.FeatureVector{35, 24, 10, 15, 1.5}, clf.seen[0])

	assert.Equal(t, "open-meteo", got.DataSource)
	assert.Equal(t, domain.SensorDisconnected, got.SensorStatus)
	require.NotNil(t, got.SensorNote)
	assert.Equal(t, inference.SensorNote, *got.SensorNote)
	assert.Equal(t, 35.0, got.FeaturesUsed.TemperatureMax)
	assert.Equal(t, 1.5, got.FeaturesUsed.Precipitation)
}

func TestPredictAt_SensorSubstitutesMaxTemperature(t *testing.T) {
	clf := mediumClassifier()
	sensors := &stubSensor{reading: sensorReading(42.0, domain.SensorConnected)}
	svc := newService(clf, coordinateForecast(), sensors, true)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{
		Latitude:  6.25,
		Longitude: -75.56,
		UseSensor: true,
	})
	require.NoError(t, err)

	require.Len(t, clf.seen, 1)
	assert.Equal(t, domain.FeatureVector{42, 24, 10, 15, 1.5}, clf.seen[0],
		"only the max temperature comes from the sensor")

	assert.Equal(t, "sensor", got.DataSource)
	assert.Equal(t, 42.0, got.FeaturesUsed.TemperatureMax)
	assert.Equal(t, 24.0, got.FeaturesUsed.TemperatureMin)
	assert.Equal(t, domain.SensorConnected, got.SensorStatus)
	assert.Nil(t, got.SensorNote)
}

func TestPredictAt_UseSensorWithoutReadingFallsBack(t *testing.T) {
	svc := newService(mediumClassifier(), coordinateForecast(), &stubSensor{}, true)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{
		Latitude:  6.25,
		Longitude: -75.56,
		UseSensor: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "open-meteo", got.DataSource)
	assert.Equal(t, 35.0, got.FeaturesUsed.TemperatureMax)
	assert.Nil(t, got.SensorNote, "note only appears when the caller declined the sensor")
}

func TestPredictAt_StaleSensorStillUsedByDefault(t *testing.T) {
	sensors := &stubSensor{reading: sensorReading(42.0, domain.SensorDisconnected)}
	svc := newService(mediumClassifier(), coordinateForecast(), sensors, true)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{
		Latitude:  6.25,
		Longitude: -75.56,
		UseSensor: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "sensor", got.DataSource)
	assert.Equal(t, 42.0, got.FeaturesUsed.TemperatureMax)
	assert.Equal(t, domain.SensorDisconnected, got.SensorStatus)
}

func TestPredictAt_StaleSensorIgnoredWhenLivenessHonored(t *testing.T) {
	sensors := &stubSensor{reading: sensorReading(42.0, domain.SensorDisconnected)}
	svc := newService(mediumClassifier(), coordinateForecast(), sensors, false)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{
		Latitude:  6.25,
		Longitude: -75.56,
		UseSensor: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "open-meteo", got.DataSource)
	assert.Equal(t, 35.0, got.FeaturesUsed.TemperatureMax)
}

func TestPredictAt_LiveSensorUsedWhenLivenessHonored(t *testing.T) {
	sensors := &stubSensor{reading: sensorReading(42.0, domain.SensorConnected)}
	svc := newService(mediumClassifier(), coordinateForecast(), sensors, false)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{
		Latitude:  6.25,
		Longitude: -75.56,
		UseSensor: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "sensor", got.DataSource)
}

func TestPredictAt_MissingCoordinates(t *testing.T) {
	forecasts := coordinateForecast()
	svc := newService(mediumClassifier(), forecasts, &stubSensor{}, true)

	_, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"latitude", "longitude"}, validationErr.Fields)
	assert.Zero(t, forecasts.calls, "no upstream call on invalid input")
}

func TestPredictAt_UpstreamErrorNoPartialResult(t *testing.T) {
	forecasts := &stubForecast{err: &domain.UpstreamError{Provider: "open-meteo", Reason: "daily field missing: temperature_2m_min"}}
	clf := mediumClassifier()
	svc := newService(clf, forecasts, &stubSensor{}, true)

	got, err := svc.PredictAt(context.Background(), inference.CoordinateRequest{Latitude: 6.25, Longitude: -75.56})

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Nil(t, got)
	assert.Empty(t, clf.seen, "classifier must not run on incomplete features")
}

func TestCheckReadiness(t *testing.T) {
	ready := newService(mediumClassifier(), &stubForecast{}, &stubSensor{}, true)
	assert.NoError(t, ready.CheckReadiness(context.Background()))

	notReady := newService(&stubClassifier{readyErr: &domain.ModelUnavailableError{}}, &stubForecast{}, &stubSensor{}, true)
	assert.Error(t, notReady.CheckReadiness(context.Background()))
}
