package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Geocoder resolves free-text addresses through Nominatim (OpenStreetMap).
type Geocoder struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewGeocoder creates a Nominatim geocoding client. Nominatim requires an
// identifying User-Agent.
func NewGeocoder(baseURL string, timeout time.Duration, logger *zap.Logger) *Geocoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "SafeRoute/1.0").
		SetHeader("Accept", "application/json")

	return &Geocoder{
		httpClient: client,
		logger:     logger,
	}
}

// Search geocodes a query and returns the raw Nominatim result list,
// passed through to the client unchanged.
func (g *Geocoder) Search(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	if limit <= 0 {
		limit = 5
	}

	var results []json.RawMessage
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              query,
			"format":         "json",
			"limit":          strconv.Itoa(limit),
			"addressdetails": "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		g.logger.Error("Nominatim request failed", zap.Error(err))
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.IsError() {
		g.logger.Error("Nominatim request failed", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("geocoding request failed: status %d", resp.StatusCode())
	}

	return results, nil
}
