package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts or updates a user profile.
func (r *UserRepository) Upsert(profile *models.UserProfile) error {
	contacts, err := json.Marshal(profile.EmergencyContacts)
	if err != nil {
		return fmt.Errorf("failed to encode emergency contacts: %w", err)
	}
	conditions, err := json.Marshal(profile.MedicalConditions)
	if err != nil {
		return fmt.Errorf("failed to encode medical conditions: %w", err)
	}

	query := `
		INSERT INTO users (user_id, name, phone, emergency_contacts, health_info, medical_conditions, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			emergency_contacts = excluded.emergency_contacts,
			health_info = excluded.health_info,
			medical_conditions = excluded.medical_conditions,
			updated_at = excluded.updated_at
	`

	profile.UpdatedAt = time.Now().UTC()
	_, err = r.db.Exec(query,
		profile.UserID,
		profile.Name,
		profile.Phone,
		string(contacts),
		profile.HealthInfo,
		string(conditions),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}
	return nil
}

// GetByID retrieves a user profile by user ID.
func (r *UserRepository) GetByID(userID string) (*models.UserProfile, error) {
	query := `
		SELECT user_id, name, phone, emergency_contacts, health_info, medical_conditions, updated_at
		FROM users
		WHERE user_id = ?
	`

	profile := &models.UserProfile{}
	var contacts, conditions string
	err := r.db.QueryRow(query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Phone,
		&contacts,
		&profile.HealthInfo,
		&conditions,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	if err := json.Unmarshal([]byte(contacts), &profile.EmergencyContacts); err != nil {
		return nil, fmt.Errorf("failed to decode emergency contacts: %w", err)
	}
	if err := json.Unmarshal([]byte(conditions), &profile.MedicalConditions); err != nil {
		return nil, fmt.Errorf("failed to decode medical conditions: %w", err)
	}

	return profile, nil
}
