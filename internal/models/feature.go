package models

// PointGeometry is a GeoJSON Point. Coordinates are [lon, lat].
type PointGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Feature is a GeoJSON Feature wrapping a single point of interest.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   PointGeometry  `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is the GeoJSON envelope returned by the map-overlay
// endpoints (cameras, infrastructure).
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	Count    int       `json:"count"`
	Source   string    `json:"source"`
}

// NewFeatureCollection wraps features in the GeoJSON envelope.
func NewFeatureCollection(features []Feature, source string) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
		Count:    len(features),
		Source:   source,
	}
}
