package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// osrmResponse is the subset of the OSRM route response the service reads.
type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry models.Geometry `json:"geometry"`
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
}

// OSRMClient fetches route candidates from an OSRM server.
type OSRMClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewOSRMClient creates an OSRM routing client.
func NewOSRMClient(baseURL string, timeout time.Duration, logger *zap.Logger) *OSRMClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &OSRMClient{
		httpClient: client,
		logger:     logger,
	}
}

// GetRoutes fetches route alternatives between two points. OSRM returns the
// shortest route first; that ordering is relied on downstream for fallback
// and tie-breaking.
func (c *OSRMClient) GetRoutes(ctx context.Context, startLon, startLat, endLon, endLat float64) ([]models.RouteCandidate, error) {
	path := fmt.Sprintf("/route/v1/foot/%f,%f;%f,%f", startLon, startLat, endLon, endLat)

	var result osrmResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"overview":     "full",
			"geometries":   "geojson",
			"alternatives": "true",
		}).
		SetResult(&result).
		Get(path)
	if err != nil {
		c.logger.Error("OSRM request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
	}
	if resp.IsError() {
		c.logger.Error("OSRM request failed", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("%w: status %d", ErrRouteUnavailable, resp.StatusCode())
	}

	if result.Code != "Ok" || len(result.Routes) == 0 {
		c.logger.Warn("OSRM returned no routes", zap.String("code", result.Code))
		return nil, ErrNoRoute
	}

	candidates := make([]models.RouteCandidate, 0, len(result.Routes))
	for _, r := range result.Routes {
		candidates = append(candidates, models.RouteCandidate{
			Geometry:       r.Geometry,
			DistanceMeters: r.Distance,
			DurationSecs:   r.Duration,
		})
	}

	return candidates, nil
}
