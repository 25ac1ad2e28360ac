package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/spatial"
)

const (
	cctvQuery = `
[out:json];
(
  node["man_made"="surveillance"](%s);
  node["surveillance:type"="camera"](%s);
);
out;`

	infrastructureQuery = `
[out:json];
(
  node["amenity"="hospital"](%s);
  node["amenity"="police"](%s);
  node["amenity"="fire_station"](%s);
  node["amenity"="ambulance_station"](%s);
  node["emergency"="yes"](%s);
);
out;`
)

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// OverpassClient queries OpenStreetMap nodes through the Overpass API.
// It backs both the camera and infrastructure signal providers and the
// map-overlay endpoints.
type OverpassClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewOverpassClient creates an Overpass API client.
func NewOverpassClient(baseURL string, timeout time.Duration, logger *zap.Logger) *OverpassClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &OverpassClient{
		httpClient: client,
		logger:     logger,
	}
}

// FetchCCTV returns surveillance camera nodes inside the bounding box.
func (c *OverpassClient) FetchCCTV(ctx context.Context, box spatial.BoundingBox) ([]models.Feature, error) {
	elements, err := c.query(ctx, cctvQuery, box, 2)
	if err != nil {
		return nil, err
	}

	features := make([]models.Feature, 0, len(elements))
	for _, el := range elements {
		features = append(features, models.Feature{
			Type: "Feature",
			Geometry: models.PointGeometry{
				Type:        "Point",
				Coordinates: []float64{el.Lon, el.Lat},
			},
			Properties: map[string]any{
				"id":   el.ID,
				"type": "cctv",
			},
		})
	}
	return features, nil
}

// FetchInfrastructure returns emergency infrastructure nodes (hospitals,
// police, fire and ambulance stations) inside the bounding box. Their density
// is used as a proxy for crowd presence.
func (c *OverpassClient) FetchInfrastructure(ctx context.Context, box spatial.BoundingBox) ([]models.Feature, error) {
	elements, err := c.query(ctx, infrastructureQuery, box, 5)
	if err != nil {
		return nil, err
	}

	features := make([]models.Feature, 0, len(elements))
	for _, el := range elements {
		infraType := el.Tags["amenity"]
		if infraType == "" {
			if el.Tags["emergency"] != "" {
				infraType = "emergency"
			} else {
				infraType = "unknown"
			}
		}
		name := el.Tags["name"]
		if name == "" {
			name = infraType
		}
		features = append(features, models.Feature{
			Type: "Feature",
			Geometry: models.PointGeometry{
				Type:        "Point",
				Coordinates: []float64{el.Lon, el.Lat},
			},
			Properties: map[string]any{
				"id":   el.ID,
				"type": infraType,
				"name": name,
			},
		})
	}
	return features, nil
}

func (c *OverpassClient) query(ctx context.Context, queryTemplate string, box spatial.BoundingBox, bboxCount int) ([]overpassElement, error) {
	// Overpass bbox order is south,west,north,east.
	bbox := fmt.Sprintf("%f,%f,%f,%f", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	args := make([]any, bboxCount)
	for i := range args {
		args[i] = bbox
	}
	query := fmt.Sprintf(queryTemplate, args...)

	var result overpassResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{"data": query}).
		SetResult(&result).
		Post("/api/interpreter")
	if err != nil {
		c.logger.Error("Overpass request failed", zap.Error(err))
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Overpass request failed", zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("overpass request failed: status %d", resp.StatusCode())
	}

	elements := make([]overpassElement, 0, len(result.Elements))
	for _, el := range result.Elements {
		if el.Lat == 0 && el.Lon == 0 {
			continue
		}
		elements = append(elements, el)
	}
	return elements, nil
}
