package models

// Location is a WGS84 point reported by a client device.
type Location struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Accuracy float64 `json:"accuracy,omitempty"` // meters, 0 when the device did not report it
}
