package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/provider"
	"github.com/saferoute/saferoute-backend-go/internal/spatial"
	"github.com/saferoute/saferoute-backend-go/pkg/response"
)

const osmSource = "OpenStreetMap (Overpass API)"

// GeoHandler handles HTTP requests for geocoding and map overlays
type GeoHandler struct {
	geocoder *provider.Geocoder
	overpass *provider.OverpassClient
	traffic  *provider.TrafficScorer
	logger   *zap.Logger
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(geocoder *provider.Geocoder, overpass *provider.OverpassClient, traffic *provider.TrafficScorer, logger *zap.Logger) *GeoHandler {
	return &GeoHandler{
		geocoder: geocoder,
		overpass: overpass,
		traffic:  traffic,
		logger:   logger,
	}
}

// Geocode resolves a free-text address.
// GET /api/v1/geocode?query=...&limit=5
func (h *GeoHandler) Geocode(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.BadRequest(c, "query parameter is required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil {
		limit = 5
	}

	results, err := h.geocoder.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.UpstreamError(c, "Geocoding service")
		return
	}

	response.Success(c, results)
}

// CCTV returns mapped surveillance cameras in a bounding box.
// GET /api/v1/cctv?min_lon=&min_lat=&max_lon=&max_lat=
func (h *GeoHandler) CCTV(c *gin.Context) {
	h.featuresInBox(c, h.overpass.FetchCCTV)
}

// Infrastructure returns mapped emergency infrastructure in a bounding box.
// GET /api/v1/infrastructure?min_lon=&min_lat=&max_lon=&max_lat=
func (h *GeoHandler) Infrastructure(c *gin.Context) {
	h.featuresInBox(c, h.overpass.FetchInfrastructure)
}

// Traffic returns the traffic flow score at a point.
// GET /api/v1/traffic?lon=&lat=
func (h *GeoHandler) Traffic(c *gin.Context) {
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	if lonErr != nil || latErr != nil {
		response.BadRequest(c, "lon and lat parameters are required")
		return
	}

	// A two-point degenerate segment probes the flow at the location.
	coords := [][]float64{{lon, lat}, {lon, lat}}
	score, err := h.traffic.Score(c.Request.Context(), coords)
	if err != nil {
		h.logger.Warn("traffic probe failed, using default score", zap.Error(err))
		score = h.traffic.DefaultScore()
	}

	response.Success(c, gin.H{
		"location":      gin.H{"lon": lon, "lat": lat},
		"traffic_score": score,
	})
}

func (h *GeoHandler) featuresInBox(c *gin.Context, fetch func(context.Context, spatial.BoundingBox) ([]models.Feature, error)) {
	box, ok := parseBBox(c)
	if !ok {
		response.BadRequest(c, "min_lon, min_lat, max_lon and max_lat parameters are required")
		return
	}

	features, err := fetch(c.Request.Context(), box)
	if err != nil {
		response.UpstreamError(c, "Map data service")
		return
	}

	response.Success(c, models.NewFeatureCollection(features, osmSource))
}

func parseBBox(c *gin.Context) (spatial.BoundingBox, bool) {
	minLon, err1 := strconv.ParseFloat(c.Query("min_lon"), 64)
	minLat, err2 := strconv.ParseFloat(c.Query("min_lat"), 64)
	maxLon, err3 := strconv.ParseFloat(c.Query("max_lon"), 64)
	maxLat, err4 := strconv.ParseFloat(c.Query("max_lat"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return spatial.BoundingBox{}, false
	}
	return spatial.BoundingBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}, true
}
