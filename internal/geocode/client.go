// Package geocode resolves free-text addresses to coordinates through the
// positionstack forward-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vivekmitra98/shareplaces-backend/internal/config"
	"github.com/vivekmitra98/shareplaces-backend/internal/models"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.GeocodeAPIKey,
		baseURL: cfg.GeocodeBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type forwardResponse struct {
	Data []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ResolveAddress looks up an address and returns the first match. A provider
// error payload, a non-200 status or an empty result set all mean the address
// could not be resolved.
func (c *Client) ResolveAddress(ctx context.Context, address string) (models.Location, error) {
	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("query", address)

	fullURL := fmt.Sprintf("%s/v1/forward?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return models.Location{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Location{}, models.ErrAddressNotFound
	}

	var result forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Location{}, fmt.Errorf("decode response: %w", err)
	}

	if result.Error != nil || len(result.Data) == 0 {
		return models.Location{}, models.ErrAddressNotFound
	}

	return models.Location{
		Lat: result.Data[0].Latitude,
		Lng: result.Data[0].Longitude,
	}, nil
}
