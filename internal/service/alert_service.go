package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/realtime"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
)

const (
	defaultSOSMessage = "Emergency!"

	// snapshotCompanionLimit caps the companion roster copied into an alert.
	snapshotCompanionLimit = 20
)

// AlertService assembles, persists and broadcasts emergency alerts.
type AlertService struct {
	alerts      *repository.AlertRepository
	users       *repository.UserRepository
	companions  *repository.CompanionRepository
	broadcaster *realtime.Broadcaster
	logger      *zap.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(
	alerts *repository.AlertRepository,
	users *repository.UserRepository,
	companions *repository.CompanionRepository,
	broadcaster *realtime.Broadcaster,
	logger *zap.Logger,
) *AlertService {
	return &AlertService{
		alerts:      alerts,
		users:       users,
		companions:  companions,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Trigger builds an alert from the request plus a point-in-time snapshot of
// the user's profile and active walk, persists it and broadcasts it to every
// connected session. The snapshot is a deep copy; later profile changes do
// not touch an emitted alert. Persistence is best-effort: a store failure is
// logged and the broadcast still goes out.
func (s *AlertService) Trigger(req models.SOSRequest) (*models.SOSAlert, error) {
	message := req.Message
	if message == "" {
		message = defaultSOSMessage
	}

	alert := &models.SOSAlert{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Location:  req.Location,
		Route:     copyRouteSummary(req.Route),
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	s.attachSnapshots(alert)

	if err := s.alerts.Create(alert); err != nil {
		s.logger.Error("failed to persist SOS alert, broadcasting anyway",
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
	}

	s.broadcaster.BroadcastAlert(*alert)

	return alert, nil
}

// attachSnapshots copies the user's profile and active walk context into the
// alert. Missing records are normal; nothing here may fail the alert.
func (s *AlertService) attachSnapshots(alert *models.SOSAlert) {
	profile, err := s.users.GetByID(alert.UserID)
	switch {
	case err == nil:
		alert.UserProfile = &models.ProfileSnapshot{
			Name:              profile.Name,
			Phone:             profile.Phone,
			EmergencyContacts: append([]string(nil), profile.EmergencyContacts...),
			HealthInfo:        profile.HealthInfo,
			MedicalConditions: append([]string(nil), profile.MedicalConditions...),
		}
	case errors.Is(err, repository.ErrNotFound):
		// user never saved a profile
	default:
		s.logger.Warn("could not fetch user profile for SOS snapshot",
			zap.String("user_id", alert.UserID),
			zap.Error(err),
		)
	}

	companion, err := s.companions.GetActiveByUser(alert.UserID)
	switch {
	case err == nil:
		alert.ActiveRoute = &models.ActiveRouteSnapshot{
			Destination: companion.Route.Destination,
			Companions:  s.activeCompanionNames(alert.UserID),
		}
	case errors.Is(err, repository.ErrNotFound):
		// no active walk
	default:
		s.logger.Warn("could not fetch active route for SOS snapshot",
			zap.String("user_id", alert.UserID),
			zap.Error(err),
		)
	}
}

// activeCompanionNames lists who else is currently walking, for the
// responder-facing snapshot. Best effort; a lookup failure yields an empty
// roster, never a failed alert.
func (s *AlertService) activeCompanionNames(userID string) []string {
	active, err := s.companions.ListActive("", snapshotCompanionLimit)
	if err != nil {
		s.logger.Warn("could not list companions for SOS snapshot",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}

	names := make([]string, 0, len(active))
	for _, c := range active {
		if c.UserID == userID {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

func copyRouteSummary(route *models.RouteSummary) *models.RouteSummary {
	if route == nil {
		return nil
	}
	c := *route
	return &c
}
