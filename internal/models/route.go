package models

// Geometry is a GeoJSON LineString as returned by the routing provider.
// Coordinates are [lon, lat] pairs.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// RouteCandidate is one alternative returned by the routing provider.
// Immutable once produced; it lives only for the duration of one evaluation.
type RouteCandidate struct {
	Geometry       Geometry `json:"geometry"`
	DistanceMeters float64  `json:"distance"`
	DurationSecs   float64  `json:"duration"`
}

// UnsafeSegment flags a low-scoring part of a chosen route.
// Granularity is whole-route (index 0) for now.
type UnsafeSegment struct {
	SegmentIndex int     `json:"segment_index"`
	Reason       string  `json:"reason"`
	Score        float64 `json:"score"`
}

// SafetyAssessment is the scored view of one route candidate.
// Sub-scores and the composite are all in [0, 100].
type SafetyAssessment struct {
	TrafficScore   float64         `json:"traffic_score"`
	CCTVScore      float64         `json:"cctv_score"`
	CrowdScore     float64         `json:"crowd_score"`
	CompositeScore float64         `json:"safety_score"`
	UnsafeSegments []UnsafeSegment `json:"unsafe_segments"`
}

// RouteType constants
const (
	RouteTypeSafest   = "safest"   // winner of safety ranking
	RouteTypeShortest = "shortest" // fallback when no candidate could be scored
)

// RouteRequest is the route evaluation input.
type RouteRequest struct {
	StartLon float64 `json:"start_lon" binding:"required"`
	StartLat float64 `json:"start_lat" binding:"required"`
	EndLon   float64 `json:"end_lon" binding:"required"`
	EndLat   float64 `json:"end_lat" binding:"required"`
}

// RouteResult is the evaluated route returned to the caller.
// Distance is kilometers and duration minutes, matching the client contract.
type RouteResult struct {
	Geometry       Geometry        `json:"geometry"`
	DistanceKm     float64         `json:"distance"`
	DurationMin    float64         `json:"duration"`
	SafetyScore    float64         `json:"safety_score"`
	TrafficScore   float64         `json:"traffic_score"`
	CCTVScore      float64         `json:"cctv_score"`
	CrowdScore     float64         `json:"crowd_score"`
	UnsafeSegments []UnsafeSegment `json:"unsafe_segments"`
	RouteType      string          `json:"route_type"`
}

// RouteSummary is the lightweight active-route description a client attaches
// to its presence announcements.
type RouteSummary struct {
	Destination string  `json:"destination,omitempty"`
	DistanceKm  float64 `json:"distance,omitempty"`
	DurationMin float64 `json:"duration,omitempty"`
	SafetyScore float64 `json:"safety_score,omitempty"`
}
