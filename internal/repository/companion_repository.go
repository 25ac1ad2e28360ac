package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// CompanionRepository handles database operations for companions and
// pairing requests
type CompanionRepository struct {
	db *sql.DB
}

// NewCompanionRepository creates a new companion repository
func NewCompanionRepository(db *sql.DB) *CompanionRepository {
	return &CompanionRepository{db: db}
}

// Create persists a companion registration.
func (r *CompanionRepository) Create(companion *models.Companion) error {
	route, err := json.Marshal(companion.Route)
	if err != nil {
		return fmt.Errorf("failed to encode companion route: %w", err)
	}
	location, err := json.Marshal(companion.CurrentLocation)
	if err != nil {
		return fmt.Errorf("failed to encode companion location: %w", err)
	}

	query := `
		INSERT INTO companions (id, name, user_id, route, current_location, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		companion.ID,
		companion.Name,
		companion.UserID,
		string(route),
		string(location),
		companion.Status,
		companion.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create companion: %w", err)
	}
	return nil
}

// ListActive retrieves active companions, optionally filtered by user,
// newest first.
func (r *CompanionRepository) ListActive(userID string, limit int) ([]models.Companion, error) {
	query := `
		SELECT id, name, user_id, route, current_location, status, created_at
		FROM companions
		WHERE status = ?
	`
	args := []interface{}{models.CompanionStatusActive}
	if userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companions: %w", err)
	}
	defer rows.Close()

	companions := []models.Companion{}
	for rows.Next() {
		var c models.Companion
		var route, location string
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &route, &location, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan companion: %w", err)
		}
		if err := json.Unmarshal([]byte(route), &c.Route); err != nil {
			return nil, fmt.Errorf("failed to decode companion route: %w", err)
		}
		if err := json.Unmarshal([]byte(location), &c.CurrentLocation); err != nil {
			return nil, fmt.Errorf("failed to decode companion location: %w", err)
		}
		companions = append(companions, c)
	}

	return companions, rows.Err()
}

// GetActiveByUser retrieves the latest active companion record for a user.
func (r *CompanionRepository) GetActiveByUser(userID string) (*models.Companion, error) {
	companions, err := r.ListActive(userID, 1)
	if err != nil {
		return nil, err
	}
	if len(companions) == 0 {
		return nil, fmt.Errorf("active companion for user %s: %w", userID, ErrNotFound)
	}
	return &companions[0], nil
}

// CreateRequest persists a pairing request. Persistence is a side channel;
// delivery does not depend on it.
func (r *CompanionRepository) CreateRequest(request *models.CompanionRequest) error {
	query := `
		INSERT INTO companion_requests (from_user_id, to_user_id, message, timestamp)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		request.FromUserID,
		request.ToUserID,
		request.Message,
		request.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create companion request: %w", err)
	}
	return nil
}
