// Package openmeteo implements domain.ForecastProvider against the Open-Meteo
// forecast API. No API key is required.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/observability"
)

const providerName = "open-meteo"

// dailyFields is the exact set of daily aggregates the model was trained on.
var dailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"wind_speed_10m_max",
	"wind_gusts_10m_max",
	"precipitation_sum",
}

// Client fetches daily forecast aggregates from Open-Meteo.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo forecast client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchDaily retrieves today's forecast aggregates for the coordinates.
// Each requested daily field must be present and non-empty; a partial
// response is an upstream error, never a zero-filled forecast.
func (c *Client) FetchDaily(ctx context.Context, latitude, longitude float64) (domain.ForecastDay, error) {
	start := time.Now()

	params := url.Values{
		"latitude":      {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude":     {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"daily":         {strings.Join(dailyFields, ",")},
		"timezone":      {"auto"},
		"forecast_days": {"1"},
	}

	day, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.ForecastAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		c.logger.Warn("forecast fetch failed",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return domain.ForecastDay{}, err
	}

	c.metrics.ForecastRequests.WithLabelValues("success").Inc()
	return day, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.ForecastDay, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.ForecastDay{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ForecastDay{}, &domain.UpstreamError{
			Provider: providerName,
			Reason:   "forecast request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.ForecastDay{}, &domain.UpstreamError{
			Provider: providerName,
			Reason:   fmt.Sprintf("status %d: %s", resp.StatusCode, body),
		}
	}

	var meteoResp response
	if err := json.NewDecoder(resp.Body).Decode(&meteoResp); err != nil {
		return domain.ForecastDay{}, &domain.UpstreamError{
			Provider: providerName,
			Reason:   "decode response",
			Err:      err,
		}
	}

	return meteoResp.Daily.firstDay()
}

// Open-Meteo API response types. Daily aggregates arrive as parallel arrays,
// one element per forecast day.

type response struct {
	Daily daily `json:"daily"`
}

type daily struct {
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
	WindGustsMax     []float64 `json:"wind_gusts_10m_max"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

func (d daily) firstDay() (domain.ForecastDay, error) {
	series := map[string][]float64{
		"temperature_2m_max": d.TemperatureMax,
		"temperature_2m_min": d.TemperatureMin,
		"wind_speed_10m_max": d.WindSpeedMax,
		"wind_gusts_10m_max": d.WindGustsMax,
		"precipitation_sum":  d.PrecipitationSum,
	}
	for _, field := range dailyFields {
		if len(series[field]) == 0 {
			return domain.ForecastDay{}, &domain.UpstreamError{
				Provider: providerName,
				Reason:   fmt.Sprintf("daily field missing: %s", field),
			}
		}
	}

	return domain.ForecastDay{
		TemperatureMax:   d.TemperatureMax[0],
		TemperatureMin:   d.TemperatureMin[0],
		WindSpeedMax:     d.WindSpeedMax[0],
		WindGustsMax:     d.WindGustsMax[0],
		PrecipitationSum: d.PrecipitationSum[0],
	}, nil
}
