package presence

import (
	"math"
	"sort"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/spatial"
)

// Matcher answers "who is walking near me" queries over the registry.
type Matcher struct {
	registry *Registry
}

// NewMatcher creates a proximity matcher over the given registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// FindNearby returns online companions within maxDistanceKm of the
// requester, sorted by ascending distance. The requester is excluded from
// its own results. An offline requester gets an empty result, not an error.
//
// Distances use the planar degree approximation (see spatial.PlanarDistanceKm);
// matching thresholds are calibrated against that metric.
func (m *Matcher) FindNearby(requesterID string, maxDistanceKm float64) []models.CompanionMatch {
	requester, ok := m.registry.Get(requesterID)
	if !ok {
		return []models.CompanionMatch{}
	}

	matches := []models.CompanionMatch{}
	for _, record := range m.registry.Snapshot() {
		if record.UserID == requesterID {
			continue
		}

		distanceKm := spatial.PlanarDistanceKm(
			requester.Location.Lat, requester.Location.Lon,
			record.Location.Lat, record.Location.Lon,
		)
		if distanceKm > maxDistanceKm {
			continue
		}

		matches = append(matches, models.CompanionMatch{
			UserID:     record.UserID,
			DistanceKm: math.Round(distanceKm*100) / 100,
			Location:   record.Location,
			Route:      record.Route,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches
}
