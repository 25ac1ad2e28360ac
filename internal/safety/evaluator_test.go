package safety

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// stubScorer resolves a score from the first coordinate's longitude, which
// lets one scorer give every candidate a distinct value.
type stubScorer struct {
	name         string
	defaultScore float64
	scores       map[float64]float64
	err          error
}

func (s *stubScorer) Name() string { return s.name }

func (s *stubScorer) DefaultScore() float64 { return s.defaultScore }

func (s *stubScorer) Score(_ context.Context, coordinates [][]float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[coordinates[0][0]], nil
}

func candidate(key float64) models.RouteCandidate {
	return models.RouteCandidate{
		Geometry: models.Geometry{
			Type:        "LineString",
			Coordinates: [][]float64{{key, 0}, {key, 0.01}},
		},
		DistanceMeters: 1000,
		DurationSecs:   720,
	}
}

func newTestEvaluator(traffic, cctv, crowd SignalProvider) *Evaluator {
	return NewEvaluator(traffic, cctv, crowd, time.Second, zap.NewNop())
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name                 string
		traffic, cctv, crowd float64
		want                 float64
	}{
		{"weighted blend", 80, 20, 40, 50.00},
		{"all zero", 0, 0, 0, 0},
		{"all max", 100, 100, 100, 100},
		{"rounding", 33.333, 33.333, 33.333, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Composite(tt.traffic, tt.cctv, tt.crowd))
		})
	}
}

func TestEvaluate_ChoosesHighestComposite(t *testing.T) {
	// Composites: 42.0, 60.0, 66.0 -> the third candidate wins.
	traffic := &stubScorer{name: "traffic", defaultScore: 75, scores: map[float64]float64{1: 90, 2: 60, 3: 30}}
	cctv := &stubScorer{name: "cctv", defaultScore: 50, scores: map[float64]float64{1: 10, 2: 60, 3: 90}}
	crowd := &stubScorer{name: "crowd", defaultScore: 50, scores: map[float64]float64{1: 10, 2: 60, 3: 90}}

	e := newTestEvaluator(traffic, cctv, crowd)
	candidates := []models.RouteCandidate{candidate(1), candidate(2), candidate(3)}

	result, err := e.Evaluate(context.Background(), candidates)
	require.NoError(t, err)

	assert.False(t, result.FallbackUsed)
	assert.Equal(t, candidates[2], result.Route)
	assert.Equal(t, 66.0, result.Assessment.CompositeScore)
	assert.Empty(t, result.Assessment.UnsafeSegments, "66 is above the unsafe threshold")
}

func TestEvaluate_CompositeInRangeAndRouteFromInput(t *testing.T) {
	traffic := &stubScorer{name: "traffic", defaultScore: 75, scores: map[float64]float64{1: 100, 2: 0}}
	cctv := &stubScorer{name: "cctv", defaultScore: 50, scores: map[float64]float64{1: 100, 2: 0}}
	crowd := &stubScorer{name: "crowd", defaultScore: 50, scores: map[float64]float64{1: 100, 2: 0}}

	e := newTestEvaluator(traffic, cctv, crowd)
	candidates := []models.RouteCandidate{candidate(1), candidate(2)}

	result, err := e.Evaluate(context.Background(), candidates)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Assessment.CompositeScore, 0.0)
	assert.LessOrEqual(t, result.Assessment.CompositeScore, 100.0)
	assert.Contains(t, candidates, result.Route)
}

func TestEvaluate_TieKeepsFirstCandidate(t *testing.T) {
	// Routing providers return the shortest route first; equal composites
	// must keep it.
	traffic := &stubScorer{name: "traffic", defaultScore: 75, scores: map[float64]float64{1: 50, 2: 50}}
	cctv := &stubScorer{name: "cctv", defaultScore: 50, scores: map[float64]float64{1: 50, 2: 50}}
	crowd := &stubScorer{name: "crowd", defaultScore: 50, scores: map[float64]float64{1: 50, 2: 50}}

	e := newTestEvaluator(traffic, cctv, crowd)
	candidates := []models.RouteCandidate{candidate(1), candidate(2)}

	result, err := e.Evaluate(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates[0], result.Route)
}

func TestEvaluate_ProviderErrorDegradesToDefault(t *testing.T) {
	traffic := &stubScorer{name: "traffic", defaultScore: 75, err: errors.New("flow api down")}
	cctv := &stubScorer{name: "cctv", defaultScore: 50, scores: map[float64]float64{1: 20}}
	crowd := &stubScorer{name: "crowd", defaultScore: 50, scores: map[float64]float64{1: 40}}

	e := newTestEvaluator(traffic, cctv, crowd)

	result, err := e.Evaluate(context.Background(), []models.RouteCandidate{candidate(1)})
	require.NoError(t, err)

	assert.False(t, result.FallbackUsed, "one failed signal must not force the fallback route")
	assert.Equal(t, 75.0, result.Assessment.TrafficScore)
	// 0.4*75 + 0.3*20 + 0.3*40 = 48.00
	assert.Equal(t, 48.0, result.Assessment.CompositeScore)
}

func TestEvaluate_AllCandidatesFailUsesFallback(t *testing.T) {
	traffic := &stubScorer{name: "traffic", defaultScore: 75}
	cctv := &stubScorer{name: "cctv", defaultScore: 50}
	crowd := &stubScorer{name: "crowd", defaultScore: 50}

	e := newTestEvaluator(traffic, cctv, crowd)

	// Degenerate single-point geometries cannot be scored at all.
	broken := models.RouteCandidate{
		Geometry:       models.Geometry{Type: "LineString", Coordinates: [][]float64{{1, 1}}},
		DistanceMeters: 500,
	}
	alsoBroken := models.RouteCandidate{
		Geometry: models.Geometry{Type: "LineString"},
	}

	result, err := e.Evaluate(context.Background(), []models.RouteCandidate{broken, alsoBroken})
	require.NoError(t, err)

	assert.True(t, result.FallbackUsed)
	assert.Equal(t, broken, result.Route, "fallback returns the first input candidate")
	assert.Equal(t, FallbackScore, result.Assessment.CompositeScore)
	assert.Equal(t, FallbackScore, result.Assessment.TrafficScore)
	assert.Equal(t, FallbackScore, result.Assessment.CCTVScore)
	assert.Equal(t, FallbackScore, result.Assessment.CrowdScore)
	assert.Empty(t, result.Assessment.UnsafeSegments)
}

func TestEvaluate_CancelledContextPropagates(t *testing.T) {
	e := newTestEvaluator(
		&stubScorer{name: "traffic", defaultScore: 75, scores: map[float64]float64{1: 80}},
		&stubScorer{name: "cctv", defaultScore: 50, scores: map[float64]float64{1: 80}},
		&stubScorer{name: "crowd", defaultScore: 50, scores: map[float64]float64{1: 80}},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation is not a provider outage; it must surface instead of
	// being masked by the neutral fallback.
	_, err := e.Evaluate(ctx, []models.RouteCandidate{candidate(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluate_EmptyCandidates(t *testing.T) {
	e := newTestEvaluator(
		&stubScorer{name: "traffic", defaultScore: 75},
		&stubScorer{name: "cctv", defaultScore: 50},
		&stubScorer{name: "crowd", defaultScore: 50},
	)

	_, err := e.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestEvaluate_UnsafeSegmentBoundary(t *testing.T) {
	tests := []struct {
		name                 string
		traffic, cctv, crowd float64
		wantSegments         int
	}{
		// 0.4*40 + 0.3*40 + 0.3*40 = 40.00, exactly at the threshold
		{"at threshold", 40, 40, 40, 0},
		// 0.4*39.99 + 0.3*39.99 + 0.3*39.99 = 39.99
		{"below threshold", 39.99, 39.99, 39.99, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traffic := &stubScorer{name: "traffic", defaultScore: 75, scores: map[float64]float64{1: tt.traffic}}
			cctv := &stubScorer{name: "cctv", defaultScore: 50, scores: map[float64]float64{1: tt.cctv}}
			crowd := &stubScorer{name: "crowd", defaultScore: 50, scores: map[float64]float64{1: tt.crowd}}

			e := newTestEvaluator(traffic, cctv, crowd)

			result, err := e.Evaluate(context.Background(), []models.RouteCandidate{candidate(1)})
			require.NoError(t, err)
			require.Len(t, result.Assessment.UnsafeSegments, tt.wantSegments)

			if tt.wantSegments > 0 {
				segment := result.Assessment.UnsafeSegments[0]
				assert.Equal(t, 0, segment.SegmentIndex)
				assert.Equal(t, result.Assessment.CompositeScore, segment.Score)
				assert.NotEmpty(t, segment.Reason)
			}
		})
	}
}
