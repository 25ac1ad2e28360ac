package models

import "time"

// UserProfile holds the per-user data snapshotted into emergency alerts.
type UserProfile struct {
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone,omitempty"`
	EmergencyContacts []string  `json:"emergency_contacts,omitempty"`
	HealthInfo        string    `json:"health_info,omitempty"`
	MedicalConditions []string  `json:"medical_conditions,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserProfileUpdate is the profile mutation payload.
type UserProfileUpdate struct {
	UserID            string   `json:"user_id" binding:"required"`
	Name              string   `json:"name" binding:"required"`
	Phone             string   `json:"phone,omitempty"`
	EmergencyContacts []string `json:"emergency_contacts,omitempty"`
	HealthInfo        string   `json:"health_info,omitempty"`
	MedicalConditions []string `json:"medical_conditions,omitempty"`
}
