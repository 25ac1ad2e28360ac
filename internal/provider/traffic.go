package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTrafficScore is the neutral traffic flow score substituted when the
// flow API is unavailable or not configured. 75 sits in the "light traffic"
// band: absence of data should not mark a route unsafe.
const DefaultTrafficScore = 75.0

type tomtomFlowResponse struct {
	FlowSegmentData *tomtomFlowSegment `json:"flowSegmentData"`
}

type tomtomFlowSegment struct {
	CurrentSpeed  float64 `json:"currentSpeed"`
	FreeFlowSpeed float64 `json:"freeFlowSpeed"`
}

// TrafficScorer scores traffic flow along a route from the TomTom flow
// segment API. Score bands: 100 free flow, 75-99 light, 50-74 moderate,
// below 50 heavy congestion.
type TrafficScorer struct {
	httpClient *resty.Client
	apiKey     string
	logger     *zap.Logger
}

// NewTrafficScorer creates a TomTom-backed traffic scorer. An empty API key
// is a valid degraded configuration; the scorer then always reports the
// neutral default.
func NewTrafficScorer(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *TrafficScorer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &TrafficScorer{
		httpClient: client,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name implements the signal provider contract.
func (s *TrafficScorer) Name() string { return "traffic" }

// DefaultScore implements the signal provider contract.
func (s *TrafficScorer) DefaultScore() float64 { return DefaultTrafficScore }

// Score rates traffic flow near the route start point, 0-100.
func (s *TrafficScorer) Score(ctx context.Context, coordinates [][]float64) (float64, error) {
	if len(coordinates) < 2 {
		return DefaultTrafficScore, nil
	}
	if s.apiKey == "" {
		s.logger.Debug("TomTom API key not configured, using default traffic score")
		return DefaultTrafficScore, nil
	}

	// Probe the flow at the route start; flow segments cover the
	// surrounding road network.
	lon, lat := coordinates[0][0], coordinates[0][1]

	var result tomtomFlowResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"point": fmt.Sprintf("%f,%f", lat, lon),
			"key":   s.apiKey,
		}).
		SetResult(&result).
		Get("/traffic/services/4/flowSegmentData/relative/10/json")
	if err != nil {
		return 0, fmt.Errorf("tomtom request failed: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("tomtom request failed: status %d", resp.StatusCode())
	}

	if result.FlowSegmentData == nil || result.FlowSegmentData.FreeFlowSpeed <= 0 {
		return DefaultTrafficScore, nil
	}

	flow := result.FlowSegmentData
	score := math.Min(100, flow.CurrentSpeed/flow.FreeFlowSpeed*100)
	score = math.Round(score*100) / 100

	s.logger.Debug("traffic flow scored",
		zap.Float64("current_speed", flow.CurrentSpeed),
		zap.Float64("free_flow_speed", flow.FreeFlowSpeed),
		zap.Float64("score", score),
	)
	return score, nil
}
