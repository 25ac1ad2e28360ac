package models

import "time"

// VerifyConfirmations is the confirmation count at which a crowd-sourced
// camera detection is considered verified.
const VerifyConfirmations = 10

// DetectionBox is one detected object in a street-level image.
type DetectionBox struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
	BBox       []int   `json:"bbox"` // [x1, y1, x2, y2]
}

// DetectionCreate is the ingest payload for a camera detection produced by an
// external inference service.
type DetectionCreate struct {
	ImageURL   string         `json:"image_url" binding:"required"`
	Location   Location       `json:"location"`
	Detections []DetectionBox `json:"detections"`
	Confidence float64        `json:"confidence"`
}

// CCTVDetection is a persisted camera detection record with its
// crowd-sourced confirmation state.
type CCTVDetection struct {
	ID            string         `json:"id"`
	Location      Location       `json:"location"`
	ImageURL      string         `json:"image_url"`
	Detections    []DetectionBox `json:"detections"`
	Confidence    float64        `json:"confidence"`
	Confirmations int            `json:"user_confirmations"`
	Verified      bool           `json:"verified"`
	CreatedAt     time.Time      `json:"created_at"`
}
