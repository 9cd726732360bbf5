package tripkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DayForecast is one day of an Open-Meteo style daily forecast.
type DayForecast struct {
	Date    string  `json:"date"`
	MinTemp float64 `json:"minTemp"`
	MaxTemp float64 `json:"maxTemp"`
	Code    int     `json:"code"` // WMO weather code
}

// WeatherFetcher fetches a daily forecast for a coordinate pair. Like
// the rate fetcher, its base URL is injectable for tests.
type WeatherFetcher struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewWeatherFetcher creates a WeatherFetcher against baseURL.
func NewWeatherFetcher(baseURL string, timeout time.Duration) *WeatherFetcher {
	return &WeatherFetcher{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Fetch returns the daily forecast for lat/lon. Failures return an
// error only; the caller decides what flag to surface.
func (f *WeatherFetcher) Fetch(ctx context.Context, lat, lon string) ([]DayForecast, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("daily", "temperature_2m_min,temperature_2m_max,weather_code")
	q.Set("timezone", "auto")
	u := fmt.Sprintf("%s/forecast?%s", f.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tripkit: weather fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tripkit: weather fetch: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Daily struct {
			Time        []string  `json:"time"`
			TempMin     []float64 `json:"temperature_2m_min"`
			TempMax     []float64 `json:"temperature_2m_max"`
			WeatherCode []int     `json:"weather_code"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tripkit: weather fetch: decode: %w", err)
	}

	days := make([]DayForecast, 0, len(payload.Daily.Time))
	for i, date := range payload.Daily.Time {
		d := DayForecast{Date: date}
		if i < len(payload.Daily.TempMin) {
			d.MinTemp = payload.Daily.TempMin[i]
		}
		if i < len(payload.Daily.TempMax) {
			d.MaxTemp = payload.Daily.TempMax[i]
		}
		if i < len(payload.Daily.WeatherCode) {
			d.Code = payload.Daily.WeatherCode[i]
		}
		days = append(days, d)
	}
	return days, nil
}
