package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers

	// KmPerDegree converts a degree delta to kilometers in the planar
	// approximation used for short-range companion matching.
	KmPerDegree = 111.0
)

// HaversineDistance calculates the great-circle distance between two points
// in meters using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PlanarDistanceKm calculates the planar approximation of the distance
// between two points: Euclidean distance in degrees scaled by 111 km/degree.
// Not great-circle distance. Good enough below a few kilometers at urban
// latitudes, which is the only range companion matching operates on; the
// matching thresholds are calibrated against this metric, so changing it
// changes their meaning.
func PlanarDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	return math.Sqrt(dLat*dLat+dLon*dLon) * KmPerDegree
}

// PolylineLengthMeters sums great-circle segment lengths over a [lon, lat]
// polyline.
func PolylineLengthMeters(coordinates [][]float64) float64 {
	var total float64
	for i := 1; i < len(coordinates); i++ {
		prev, cur := coordinates[i-1], coordinates[i]
		if len(prev) < 2 || len(cur) < 2 {
			continue
		}
		total += HaversineDistance(prev[1], prev[0], cur[1], cur[0])
	}
	return total
}
