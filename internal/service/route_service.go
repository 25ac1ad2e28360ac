package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/safety"
	"github.com/saferoute/saferoute-backend-go/internal/spatial"
)

// RoutingProvider produces route candidates between two points.
type RoutingProvider interface {
	GetRoutes(ctx context.Context, startLon, startLat, endLon, endLat float64) ([]models.RouteCandidate, error)
}

// RouteService handles business logic for safety-scored routing
type RouteService struct {
	routing   RoutingProvider
	evaluator *safety.Evaluator
	logger    *zap.Logger
}

// NewRouteService creates a new route service
func NewRouteService(routing RoutingProvider, evaluator *safety.Evaluator, logger *zap.Logger) *RouteService {
	return &RouteService{
		routing:   routing,
		evaluator: evaluator,
		logger:    logger,
	}
}

// SafestRoute fetches route alternatives and returns the one ranked safest.
// Routing failures propagate; scoring failures degrade to the shortest
// route with a neutral assessment.
func (s *RouteService) SafestRoute(ctx context.Context, req models.RouteRequest) (*models.RouteResult, error) {
	candidates, err := s.routing.GetRoutes(ctx, req.StartLon, req.StartLat, req.EndLon, req.EndLat)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluator.Evaluate(ctx, candidates)
	if err != nil {
		return nil, err
	}

	routeType := models.RouteTypeSafest
	if result.FallbackUsed {
		routeType = models.RouteTypeShortest
	}

	distanceKm := result.Route.DistanceMeters / 1000
	if distanceKm <= 0 {
		// Some routing responses carry geometry but no usable distance;
		// measure the polyline instead of returning a zero-length walk.
		distanceKm = spatial.PolylineLengthMeters(result.Route.Geometry.Coordinates) / 1000
		s.logger.Warn("routing provider reported no distance, measuring geometry",
			zap.Float64("derived_km", distanceKm),
		)
	}

	s.logger.Info("route evaluated",
		zap.Int("candidates", len(candidates)),
		zap.Float64("safety_score", result.Assessment.CompositeScore),
		zap.Bool("fallback", result.FallbackUsed),
	)

	return &models.RouteResult{
		Geometry:       result.Route.Geometry,
		DistanceKm:     distanceKm,
		DurationMin:    result.Route.DurationSecs / 60,
		SafetyScore:    result.Assessment.CompositeScore,
		TrafficScore:   result.Assessment.TrafficScore,
		CCTVScore:      result.Assessment.CCTVScore,
		CrowdScore:     result.Assessment.CrowdScore,
		UnsafeSegments: result.Assessment.UnsafeSegments,
		RouteType:      routeType,
	}, nil
}
