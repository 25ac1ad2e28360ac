package spatial

// BoundingBox is a lon/lat axis-aligned box: [min_lon, min_lat, max_lon, max_lat].
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BoundingBoxFromPolyline computes the bounding box of a [lon, lat] polyline.
// Returns false when the polyline holds no usable points.
func BoundingBoxFromPolyline(coordinates [][]float64) (BoundingBox, bool) {
	var box BoundingBox
	found := false
	for _, coord := range coordinates {
		if len(coord) < 2 {
			continue
		}
		lon, lat := coord[0], coord[1]
		if !found {
			box = BoundingBox{MinLon: lon, MinLat: lat, MaxLon: lon, MaxLat: lat}
			found = true
			continue
		}
		if lon < box.MinLon {
			box.MinLon = lon
		}
		if lon > box.MaxLon {
			box.MaxLon = lon
		}
		if lat < box.MinLat {
			box.MinLat = lat
		}
		if lat > box.MaxLat {
			box.MaxLat = lat
		}
	}
	return box, found
}
