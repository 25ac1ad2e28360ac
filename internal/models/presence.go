package models

import "time"

// PresenceRecord is the live state of one connected user. The presence
// registry owns these; consumers only ever see copies.
type PresenceRecord struct {
	UserID    string        `json:"user_id"`
	SessionID string        `json:"session_id"`
	Location  Location      `json:"location"`
	Route     *RouteSummary `json:"route,omitempty"`
	LastSeen  time.Time     `json:"last_seen"`
}

// CompanionMatch is one proximity search result.
type CompanionMatch struct {
	UserID     string        `json:"user_id"`
	DistanceKm float64       `json:"distance_km"`
	Location   Location      `json:"location"`
	Route      *RouteSummary `json:"route,omitempty"`
}
