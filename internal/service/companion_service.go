package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/realtime"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
)

// companionListLimit caps the active-companion listing.
const companionListLimit = 100

// CompanionService handles business logic for shared walks and pairing
// requests
type CompanionService struct {
	repo        *repository.CompanionRepository
	broadcaster *realtime.Broadcaster
	logger      *zap.Logger
}

// NewCompanionService creates a new companion service
func NewCompanionService(repo *repository.CompanionRepository, broadcaster *realtime.Broadcaster, logger *zap.Logger) *CompanionService {
	return &CompanionService{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Create registers a shared walk and announces it to connected sessions.
func (s *CompanionService) Create(create models.CompanionCreate) (*models.Companion, error) {
	companion := &models.Companion{
		ID:              uuid.NewString(),
		Name:            create.Name,
		UserID:          create.UserID,
		Route:           create.Route,
		CurrentLocation: create.CurrentLocation,
		Status:          models.CompanionStatusActive,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Create(companion); err != nil {
		return nil, err
	}

	s.broadcaster.AnnounceCompanion(*companion)
	return companion, nil
}

// List returns active companions, optionally filtered by user.
func (s *CompanionService) List(userID string) ([]models.Companion, error) {
	return s.repo.ListActive(userID, companionListLimit)
}

// SendRequest persists a pairing request and relays it: directly to the
// target's session when the target is online, as a broadcast otherwise.
// A store failure does not stop delivery.
func (s *CompanionService) SendRequest(request models.CompanionRequest) (realtime.DeliveryOutcome, error) {
	if request.Timestamp.IsZero() {
		request.Timestamp = time.Now().UTC()
	}
	if request.Message == "" {
		request.Message = "Let's walk together?"
	}

	if err := s.repo.CreateRequest(&request); err != nil {
		s.logger.Error("failed to persist companion request, relaying anyway",
			zap.String("from", request.FromUserID),
			zap.String("to", request.ToUserID),
			zap.Error(err),
		)
	}

	outcome := s.broadcaster.Relay(request)
	s.logger.Info("companion request relayed",
		zap.String("from", request.FromUserID),
		zap.String("to", request.ToUserID),
		zap.String("outcome", string(outcome)),
	)
	return outcome, nil
}
