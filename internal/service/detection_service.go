package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
)

// DetectionService handles business logic for crowd-verified camera
// detections. Inference itself runs in an external service; this side only
// stores its output and tracks user confirmations.
type DetectionService struct {
	repo   *repository.DetectionRepository
	logger *zap.Logger
}

// NewDetectionService creates a new detection service
func NewDetectionService(repo *repository.DetectionRepository, logger *zap.Logger) *DetectionService {
	return &DetectionService{repo: repo, logger: logger}
}

// Ingest stores a detection produced by the inference service.
func (s *DetectionService) Ingest(create models.DetectionCreate) (*models.CCTVDetection, error) {
	detection := &models.CCTVDetection{
		ID:         uuid.NewString(),
		Location:   create.Location,
		ImageURL:   create.ImageURL,
		Detections: create.Detections,
		Confidence: create.Confidence,
		CreatedAt:  time.Now().UTC(),
	}
	if detection.Detections == nil {
		detection.Detections = []models.DetectionBox{}
	}

	if err := s.repo.Create(detection); err != nil {
		return nil, err
	}

	s.logger.Info("detection ingested",
		zap.String("detection_id", detection.ID),
		zap.Int("boxes", len(detection.Detections)),
	)
	return detection, nil
}

// Confirm records one user confirmation and flips the detection to verified
// once enough users agree.
func (s *DetectionService) Confirm(id string) (*models.CCTVDetection, error) {
	detection, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	detection.Confirmations++
	detection.Verified = detection.Confirmations >= models.VerifyConfirmations

	if err := s.repo.UpdateConfirmations(id, detection.Confirmations, detection.Verified); err != nil {
		return nil, err
	}

	return detection, nil
}

// Get retrieves a detection by ID.
func (s *DetectionService) Get(id string) (*models.CCTVDetection, error) {
	return s.repo.GetByID(id)
}
