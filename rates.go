package tripkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RateFetcher fetches the exchange rate between the home and travel
// currencies from a Frankfurter-style JSON API. The base URL is
// injectable so tests point it at a local server.
type RateFetcher struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewRateFetcher creates a RateFetcher against baseURL.
func NewRateFetcher(baseURL string, timeout time.Duration) *RateFetcher {
	return &RateFetcher{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Fetch returns how many units of travel currency one unit of home
// currency buys. The request is bounded by the fetcher's timeout; any
// failure returns an error and nothing else, leaving stored state to
// the caller.
func (f *RateFetcher) Fetch(ctx context.Context, home, travel string) (float64, error) {
	if home == "" || travel == "" {
		return 0, fmt.Errorf("tripkit: rate fetch needs both currencies")
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/latest?base=%s&symbols=%s", f.baseURL, url.QueryEscape(home), url.QueryEscape(travel))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("tripkit: rate fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tripkit: rate fetch: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("tripkit: rate fetch: decode: %w", err)
	}
	rate, ok := payload.Rates[travel]
	if !ok {
		return 0, fmt.Errorf("tripkit: rate fetch: no rate for %s", travel)
	}
	return rate, nil
}
