package provider

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/spatial"
)

// DefaultCrowdScore is the neutral crowd presence score substituted when
// infrastructure data cannot be fetched.
const DefaultCrowdScore = 50.0

// CrowdScorer scores likely crowd presence along a route. Mapped public
// infrastructure (hospitals, police, fire and ambulance stations) is used as
// a proxy: busy areas are better lit and watched.
type CrowdScorer struct {
	overpass *OverpassClient
	logger   *zap.Logger
}

// NewCrowdScorer creates a crowd presence scorer backed by Overpass.
func NewCrowdScorer(overpass *OverpassClient, logger *zap.Logger) *CrowdScorer {
	return &CrowdScorer{overpass: overpass, logger: logger}
}

// Name implements the signal provider contract.
func (s *CrowdScorer) Name() string { return "crowd" }

// DefaultScore implements the signal provider contract.
func (s *CrowdScorer) DefaultScore() float64 { return DefaultCrowdScore }

// Score rates crowd presence 0-100: every 3 infrastructure points add 10,
// capped at 100.
func (s *CrowdScorer) Score(ctx context.Context, coordinates [][]float64) (float64, error) {
	box, ok := spatial.BoundingBoxFromPolyline(coordinates)
	if !ok {
		return 0, fmt.Errorf("crowd score: no usable coordinates")
	}

	features, err := s.overpass.FetchInfrastructure(ctx, box)
	if err != nil {
		return 0, fmt.Errorf("crowd score: %w", err)
	}

	count := len(features)
	score := math.Min(100, float64(count)/3*10)
	score = math.Round(score*100) / 100

	s.logger.Debug("crowd presence scored",
		zap.Int("infrastructure_points", count),
		zap.Float64("score", score),
	)
	return score, nil
}
