package provider

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/spatial"
)

// DefaultCCTVScore is the neutral surveillance coverage score substituted
// when camera data cannot be fetched.
const DefaultCCTVScore = 50.0

// CCTVScorer scores surveillance coverage along a route from the density of
// mapped cameras inside the route's bounding box.
type CCTVScorer struct {
	overpass *OverpassClient
	logger   *zap.Logger
}

// NewCCTVScorer creates a camera coverage scorer backed by Overpass.
func NewCCTVScorer(overpass *OverpassClient, logger *zap.Logger) *CCTVScorer {
	return &CCTVScorer{overpass: overpass, logger: logger}
}

// Name implements the signal provider contract.
func (s *CCTVScorer) Name() string { return "cctv" }

// DefaultScore implements the signal provider contract.
func (s *CCTVScorer) DefaultScore() float64 { return DefaultCCTVScore }

// Score rates camera coverage 0-100: every 5 mapped cameras add 10 points,
// capped at 100.
func (s *CCTVScorer) Score(ctx context.Context, coordinates [][]float64) (float64, error) {
	box, ok := spatial.BoundingBoxFromPolyline(coordinates)
	if !ok {
		return 0, fmt.Errorf("cctv score: no usable coordinates")
	}

	features, err := s.overpass.FetchCCTV(ctx, box)
	if err != nil {
		return 0, fmt.Errorf("cctv score: %w", err)
	}

	count := len(features)
	score := math.Min(100, float64(count)/5*10)
	score = math.Round(score*100) / 100

	s.logger.Debug("cctv coverage scored",
		zap.Int("cameras", count),
		zap.Float64("score", score),
	)
	return score, nil
}
