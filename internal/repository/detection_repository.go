package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// DetectionRepository handles database operations for camera detections
type DetectionRepository struct {
	db *sql.DB
}

// NewDetectionRepository creates a new detection repository
func NewDetectionRepository(db *sql.DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// Create persists a camera detection record.
func (r *DetectionRepository) Create(detection *models.CCTVDetection) error {
	location, err := json.Marshal(detection.Location)
	if err != nil {
		return fmt.Errorf("failed to encode detection location: %w", err)
	}
	boxes, err := json.Marshal(detection.Detections)
	if err != nil {
		return fmt.Errorf("failed to encode detection boxes: %w", err)
	}

	query := `
		INSERT INTO cctv_detections (id, location, image_url, detections, confidence, user_confirmations, verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		detection.ID,
		string(location),
		detection.ImageURL,
		string(boxes),
		detection.Confidence,
		detection.Confirmations,
		detection.Verified,
		detection.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create detection: %w", err)
	}
	return nil
}

// GetByID retrieves a detection by ID.
func (r *DetectionRepository) GetByID(id string) (*models.CCTVDetection, error) {
	query := `
		SELECT id, location, image_url, detections, confidence, user_confirmations, verified, created_at
		FROM cctv_detections
		WHERE id = ?
	`

	detection := &models.CCTVDetection{}
	var location, boxes string
	err := r.db.QueryRow(query, id).Scan(
		&detection.ID,
		&location,
		&detection.ImageURL,
		&boxes,
		&detection.Confidence,
		&detection.Confirmations,
		&detection.Verified,
		&detection.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("detection %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get detection: %w", err)
	}

	if err := json.Unmarshal([]byte(location), &detection.Location); err != nil {
		return nil, fmt.Errorf("failed to decode detection location: %w", err)
	}
	if err := json.Unmarshal([]byte(boxes), &detection.Detections); err != nil {
		return nil, fmt.Errorf("failed to decode detection boxes: %w", err)
	}

	return detection, nil
}

// UpdateConfirmations stores a new confirmation count and verified flag.
func (r *DetectionRepository) UpdateConfirmations(id string, confirmations int, verified bool) error {
	query := `
		UPDATE cctv_detections
		SET user_confirmations = ?, verified = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, confirmations, verified, id)
	if err != nil {
		return fmt.Errorf("failed to update detection confirmations: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("detection %s: %w", id, ErrNotFound)
	}
	return nil
}
