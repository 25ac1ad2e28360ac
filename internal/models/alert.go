package models

import "time"

// SOSRequest is the client payload that triggers an emergency alert.
type SOSRequest struct {
	UserID   string        `json:"user_id" binding:"required"`
	Location Location      `json:"location" binding:"required"`
	Route    *RouteSummary `json:"route,omitempty"`
	Message  string        `json:"message"`
}

// ProfileSnapshot is the part of a user profile copied into an alert for
// emergency responders. It is a deep copy taken at alert time; later profile
// edits must not change an emitted alert.
type ProfileSnapshot struct {
	Name              string   `json:"name,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	EmergencyContacts []string `json:"emergency_contacts,omitempty"`
	HealthInfo        string   `json:"health_info,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
}

// ActiveRouteSnapshot is the walk-in-progress context copied into an alert.
type ActiveRouteSnapshot struct {
	Destination string   `json:"destination,omitempty"`
	Companions  []string `json:"companions,omitempty"`
}

// SOSAlert is an emitted emergency alert. Immutable once created.
type SOSAlert struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Location    Location             `json:"location"`
	Route       *RouteSummary        `json:"route,omitempty"`
	Message     string               `json:"message"`
	Timestamp   time.Time            `json:"timestamp"`
	UserProfile *ProfileSnapshot     `json:"user_profile,omitempty"`
	ActiveRoute *ActiveRouteSnapshot `json:"active_route,omitempty"`
}
