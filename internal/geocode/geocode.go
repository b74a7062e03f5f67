// Package geocode is a thin client for the external geocoding/routing
// provider. Requests pass through opaquely; provider failures surface the
// provider's own status code.
package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ProviderError carries the status code the provider answered with.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("geocoding provider returned %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Forward geocodes a free-text query to candidate locations.
func (c *Client) Forward(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{"text": {query}}
	return c.get(ctx, "/geocode/search", params)
}

// Reverse resolves coordinates to the nearest known places.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	params := url.Values{
		"point.lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"point.lon": {strconv.FormatFloat(lng, 'f', -1, 64)},
	}
	return c.get(ctx, "/geocode/reverse", params)
}

// Categories lists the provider's place categories.
func (c *Client) Categories(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/categories", nil)
}

// Route calculates a route through the given [lng, lat] waypoints.
func (c *Client) Route(ctx context.Context, profile string, waypoints [][2]float64) (json.RawMessage, error) {
	body := map[string]any{"coordinates": waypoints}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal route request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Status: resp.StatusCode, Body: string(body)}
	}
	return json.RawMessage(body), nil
}
