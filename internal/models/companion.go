package models

import "time"

// Companion status constants
const (
	CompanionStatusActive   = "active"
	CompanionStatusInactive = "inactive"
)

// CompanionCreate is the payload for registering a shared walk.
type CompanionCreate struct {
	Name            string       `json:"name" binding:"required"`
	UserID          string       `json:"user_id" binding:"required"`
	Route           RouteSummary `json:"route"`
	CurrentLocation Location     `json:"current_location"`
}

// Companion is a persisted route-sharing registration.
type Companion struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	UserID          string       `json:"user_id"`
	Route           RouteSummary `json:"route"`
	CurrentLocation Location     `json:"current_location"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// CompanionRequest is a pairing request from one user to another.
// Delivery is best-effort; persistence is a side channel.
type CompanionRequest struct {
	FromUserID string    `json:"from_user_id" binding:"required"`
	ToUserID   string    `json:"to_user_id" binding:"required"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
