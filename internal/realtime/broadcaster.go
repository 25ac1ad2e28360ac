package realtime

import (
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/presence"
)

// DeliveryOutcome reports how a relayed message reached its audience.
type DeliveryOutcome string

const (
	// DeliveryDirect means the message went straight to the target's session.
	DeliveryDirect DeliveryOutcome = "direct"
	// DeliveryBroadcast means the target was offline and the message went
	// out to everyone instead.
	DeliveryBroadcast DeliveryOutcome = "broadcast"
)

// Broadcaster pushes alerts and pairing requests to connected sessions.
// Delivery is best-effort and at-most-once; a failure toward one session
// never blocks the rest.
type Broadcaster struct {
	hub      *Hub
	registry *presence.Registry
	logger   *zap.Logger
}

// NewBroadcaster creates an alert broadcaster over the given hub and
// presence registry.
func NewBroadcaster(hub *Hub, registry *presence.Registry, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		registry: registry,
		logger:   logger,
	}
}

// BroadcastAlert delivers an emergency alert to every connected session.
// Emergencies are not geo-filtered.
func (b *Broadcaster) BroadcastAlert(alert models.SOSAlert) {
	b.logger.Warn("broadcasting SOS alert",
		zap.String("alert_id", alert.ID),
		zap.String("user_id", alert.UserID),
		zap.Float64("lat", alert.Location.Lat),
		zap.Float64("lon", alert.Location.Lon),
	)
	b.hub.Broadcast(EventSOSAlert, alert, "")
}

// Relay delivers a pairing request to the target user's session when the
// target is online; otherwise it degrades to a broadcast so someone nearby
// may still see it.
func (b *Broadcaster) Relay(request models.CompanionRequest) DeliveryOutcome {
	if record, ok := b.registry.Get(request.ToUserID); ok {
		if err := b.hub.Send(record.SessionID, EventCompanionRequest, request); err == nil {
			return DeliveryDirect
		}
		b.logger.Warn("direct relay failed, degrading to broadcast",
			zap.String("to_user_id", request.ToUserID),
			zap.String("session_id", record.SessionID),
		)
	}

	b.hub.Broadcast(EventCompanionRequest, request, "")
	return DeliveryBroadcast
}

// NotifyOffline tells every session that a user went offline.
func (b *Broadcaster) NotifyOffline(userID string) {
	b.hub.Broadcast(EventCompanionOffline, map[string]string{"user_id": userID}, "")
}

// AnnounceCompanion tells every session that a new companion registered.
func (b *Broadcaster) AnnounceCompanion(companion models.Companion) {
	b.hub.Broadcast(EventCompanionJoined, map[string]any{
		"id":       companion.ID,
		"name":     companion.Name,
		"location": companion.CurrentLocation,
	}, "")
}
