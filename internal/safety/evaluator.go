// Package safety ranks route candidates by a weighted blend of traffic,
// surveillance and crowd signals.
package safety

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// Composite score weights. Traffic exposure dominates because it is the most
// direct physical risk to a pedestrian.
const (
	WeightTraffic = 0.4
	WeightCCTV    = 0.3
	WeightCrowd   = 0.3

	// UnsafeThreshold is the composite score below which the chosen route
	// is annotated with an unsafe segment.
	UnsafeThreshold = 40.0

	// FallbackScore is the neutral assessment applied when no candidate
	// could be scored at all.
	FallbackScore = 50.0

	unsafeReason = "Limited CCTV coverage or high crime area"
)

// ErrNoCandidates is returned when Evaluate is called with an empty
// candidate set.
var ErrNoCandidates = errors.New("no route candidates to evaluate")

// SignalProvider is one independently failable safety signal source.
// Score returns a value in [0, 100]; DefaultScore is the documented neutral
// value substituted when the provider fails or times out.
type SignalProvider interface {
	Name() string
	DefaultScore() float64
	Score(ctx context.Context, coordinates [][]float64) (float64, error)
}

// Result is the outcome of a route evaluation. FallbackUsed reports that no
// candidate could be scored and the first (shortest) candidate was returned
// with a neutral assessment.
type Result struct {
	Assessment   models.SafetyAssessment
	Route        models.RouteCandidate
	FallbackUsed bool
}

// Evaluator scores and ranks route candidates. It holds no mutable state;
// concurrent Evaluate calls are independent.
type Evaluator struct {
	traffic SignalProvider
	cctv    SignalProvider
	crowd   SignalProvider
	timeout time.Duration
	logger  *zap.Logger
}

// NewEvaluator creates a route safety evaluator. timeout bounds each
// individual provider call.
func NewEvaluator(traffic, cctv, crowd SignalProvider, timeout time.Duration, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		traffic: traffic,
		cctv:    cctv,
		crowd:   crowd,
		timeout: timeout,
		logger:  logger,
	}
}

// Evaluate scores every candidate and returns the one with the highest
// composite score. Ties keep the earliest candidate, which biases toward the
// shortest route since routing providers return it first. Candidates that
// cannot be scored are skipped; if none can be scored the first candidate is
// returned with a neutral assessment and FallbackUsed set. A partial signal
// never blocks a routing decision. Cancellation of ctx is the exception and
// propagates as an error.
func (e *Evaluator) Evaluate(ctx context.Context, candidates []models.RouteCandidate) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrNoCandidates
	}

	bestIdx := -1
	var best models.SafetyAssessment

	for i, candidate := range candidates {
		assessment, err := e.scoreCandidate(ctx, candidate)
		if err != nil {
			e.logger.Warn("skipping route candidate",
				zap.Int("candidate", i),
				zap.Error(err),
			)
			continue
		}

		if bestIdx == -1 || assessment.CompositeScore > best.CompositeScore {
			bestIdx = i
			best = assessment
		}
	}

	fallbackUsed := false
	if bestIdx == -1 {
		// A cancelled request fails every candidate; that is not a signal
		// outage and must not be answered with the neutral fallback.
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		e.logger.Warn("safety scoring failed for all candidates, falling back to shortest route")
		bestIdx = 0
		best = models.SafetyAssessment{
			TrafficScore:   FallbackScore,
			CCTVScore:      FallbackScore,
			CrowdScore:     FallbackScore,
			CompositeScore: FallbackScore,
		}
		fallbackUsed = true
	}

	best.UnsafeSegments = []models.UnsafeSegment{}
	if best.CompositeScore < UnsafeThreshold {
		best.UnsafeSegments = append(best.UnsafeSegments, models.UnsafeSegment{
			SegmentIndex: 0,
			Reason:       unsafeReason,
			Score:        best.CompositeScore,
		})
	}

	return Result{
		Assessment:   best,
		Route:        candidates[bestIdx],
		FallbackUsed: fallbackUsed,
	}, nil
}

type scoreResult struct {
	value float64
	err   error
}

// scoreCandidate computes the three sub-scores concurrently and folds
// failures onto the providers' neutral defaults. It fails only when the
// candidate geometry is unusable or the request context is done.
func (e *Evaluator) scoreCandidate(ctx context.Context, candidate models.RouteCandidate) (models.SafetyAssessment, error) {
	coords := candidate.Geometry.Coordinates
	if len(coords) < 2 {
		return models.SafetyAssessment{}, errors.New("candidate has fewer than 2 points")
	}

	providers := [3]SignalProvider{e.traffic, e.cctv, e.crowd}
	var results [3]scoreResult

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p SignalProvider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()
			value, err := p.Score(callCtx, coords)
			results[i] = scoreResult{value: value, err: err}
		}(i, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return models.SafetyAssessment{}, err
	}

	traffic := e.fold(providers[0], results[0])
	cctv := e.fold(providers[1], results[1])
	crowd := e.fold(providers[2], results[2])

	return models.SafetyAssessment{
		TrafficScore:   traffic,
		CCTVScore:      cctv,
		CrowdScore:     crowd,
		CompositeScore: Composite(traffic, cctv, crowd),
	}, nil
}

// fold maps one provider result onto a usable score. Failures and timeouts
// degrade to the provider's documented neutral default; the substitution is
// logged so degraded signals stay observable.
func (e *Evaluator) fold(p SignalProvider, r scoreResult) float64 {
	if r.err != nil {
		e.logger.Warn("signal provider failed, substituting default score",
			zap.String("provider", p.Name()),
			zap.Float64("default", p.DefaultScore()),
			zap.Error(r.err),
		)
		return p.DefaultScore()
	}
	return clampScore(r.value)
}

// Composite blends the three sub-scores into the overall safety score,
// rounded to 2 decimals. Sub-scores in [0, 100] always give a composite in
// [0, 100].
func Composite(traffic, cctv, crowd float64) float64 {
	return round2(WeightTraffic*traffic + WeightCCTV*cctv + WeightCrowd*crowd)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
