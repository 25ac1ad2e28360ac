package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// AlertRepository handles database operations for SOS alerts
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Create persists an emitted alert. Alerts are immutable; there is no
// update path.
func (r *AlertRepository) Create(alert *models.SOSAlert) error {
	location, err := json.Marshal(alert.Location)
	if err != nil {
		return fmt.Errorf("failed to encode alert location: %w", err)
	}

	var route any
	if alert.Route != nil {
		encoded, err := json.Marshal(alert.Route)
		if err != nil {
			return fmt.Errorf("failed to encode alert route: %w", err)
		}
		route = string(encoded)
	}

	var profile any
	if alert.UserProfile != nil {
		encoded, err := json.Marshal(alert.UserProfile)
		if err != nil {
			return fmt.Errorf("failed to encode alert profile snapshot: %w", err)
		}
		profile = string(encoded)
	}

	var activeRoute any
	if alert.ActiveRoute != nil {
		encoded, err := json.Marshal(alert.ActiveRoute)
		if err != nil {
			return fmt.Errorf("failed to encode alert active route: %w", err)
		}
		activeRoute = string(encoded)
	}

	query := `
		INSERT INTO sos_alerts (id, user_id, location, route, message, user_profile, active_route, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		alert.ID,
		alert.UserID,
		string(location),
		route,
		alert.Message,
		profile,
		activeRoute,
		alert.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create sos alert: %w", err)
	}
	return nil
}

// GetByID retrieves an alert by ID.
func (r *AlertRepository) GetByID(id string) (*models.SOSAlert, error) {
	query := `
		SELECT id, user_id, location, route, message, user_profile, active_route, timestamp
		FROM sos_alerts
		WHERE id = ?
	`

	alert := &models.SOSAlert{}
	var location string
	var route, profile, activeRoute sql.NullString
	err := r.db.QueryRow(query, id).Scan(
		&alert.ID,
		&alert.UserID,
		&location,
		&route,
		&alert.Message,
		&profile,
		&activeRoute,
		&alert.Timestamp,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sos alert %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sos alert: %w", err)
	}

	if err := json.Unmarshal([]byte(location), &alert.Location); err != nil {
		return nil, fmt.Errorf("failed to decode alert location: %w", err)
	}
	if route.Valid {
		if err := json.Unmarshal([]byte(route.String), &alert.Route); err != nil {
			return nil, fmt.Errorf("failed to decode alert route: %w", err)
		}
	}
	if profile.Valid {
		if err := json.Unmarshal([]byte(profile.String), &alert.UserProfile); err != nil {
			return nil, fmt.Errorf("failed to decode alert profile snapshot: %w", err)
		}
	}
	if activeRoute.Valid {
		if err := json.Unmarshal([]byte(activeRoute.String), &alert.ActiveRoute); err != nil {
			return nil, fmt.Errorf("failed to decode alert active route: %w", err)
		}
	}

	return alert, nil
}
