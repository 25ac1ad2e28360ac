package realtime

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/presence"
)

// defaultSearchRadiusKm is used when a find_companions frame does not carry
// a radius.
const defaultSearchRadiusKm = 1.0

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from app origins configured at the CORS
	// layer; the upgrade itself accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Gateway terminates websocket connections and dispatches presence traffic
// between sessions and the registry.
type Gateway struct {
	hub         *Hub
	registry    *presence.Registry
	matcher     *presence.Matcher
	broadcaster *Broadcaster
	logger      *zap.Logger
}

// NewGateway creates the websocket gateway.
func NewGateway(hub *Hub, registry *presence.Registry, matcher *presence.Matcher, broadcaster *Broadcaster, logger *zap.Logger) *Gateway {
	return &Gateway{
		hub:         hub,
		registry:    registry,
		matcher:     matcher,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// inboundFrame is one client -> server websocket message.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type presenceFrame struct {
	UserID   string               `json:"user_id"`
	Location *models.Location     `json:"location"`
	Route    *models.RouteSummary `json:"route"`
}

type locationFrame struct {
	UserID   string           `json:"user_id"`
	Location *models.Location `json:"location"`
}

type findCompanionsFrame struct {
	UserID        string  `json:"user_id"`
	MaxDistanceKm float64 `json:"max_distance_km"`
}

// Handle upgrades the request and runs the session's read loop until the
// client disconnects.
// GET /ws
func (g *Gateway) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := g.hub.Register(conn)
	defer g.teardown(session)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			g.logger.Warn("discarding malformed frame",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
			continue
		}

		g.dispatch(session, frame)
	}
}

// teardown runs exactly once per connection: the session leaves the hub, its
// presence record is removed and companions are notified a single time.
func (g *Gateway) teardown(session *Session) {
	g.hub.Unregister(session.ID)
	if userID, ok := g.registry.RemoveBySession(session.ID); ok {
		g.broadcaster.NotifyOffline(userID)
		g.logger.Info("user went offline",
			zap.String("user_id", userID),
			zap.String("session_id", session.ID),
		)
	}
}

func (g *Gateway) dispatch(session *Session, frame inboundFrame) {
	switch frame.Event {
	case EventUserPresence:
		g.handlePresence(session, frame.Data)
	case EventLocationUpdate:
		g.handleLocationUpdate(session, frame.Data)
	case EventFindCompanions:
		g.handleFindCompanions(session, frame.Data)
	default:
		g.logger.Debug("ignoring unknown event",
			zap.String("session_id", session.ID),
			zap.String("event", frame.Event),
		)
	}
}

func (g *Gateway) handlePresence(session *Session, data json.RawMessage) {
	var frame presenceFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.UserID == "" || frame.Location == nil {
		g.logger.Warn("invalid presence data", zap.String("session_id", session.ID))
		return
	}

	g.registry.Announce(frame.UserID, session.ID, *frame.Location, frame.Route)
	g.logger.Info("user online",
		zap.String("user_id", frame.UserID),
		zap.Float64("lat", frame.Location.Lat),
		zap.Float64("lon", frame.Location.Lon),
	)

	g.hub.Broadcast(EventCompanionsList, map[string]any{
		"companions": g.registry.Snapshot(),
	}, "")
}

func (g *Gateway) handleLocationUpdate(session *Session, data json.RawMessage) {
	var frame locationFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.UserID == "" || frame.Location == nil {
		return
	}

	if !g.registry.UpdateLocation(frame.UserID, *frame.Location) {
		return
	}

	g.hub.Broadcast(EventCompanionLocation, map[string]any{
		"user_id":  frame.UserID,
		"location": frame.Location,
	}, session.ID)
}

func (g *Gateway) handleFindCompanions(session *Session, data json.RawMessage) {
	var frame findCompanionsFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.UserID == "" {
		return
	}
	if frame.MaxDistanceKm <= 0 {
		frame.MaxDistanceKm = defaultSearchRadiusKm
	}

	matches := g.matcher.FindNearby(frame.UserID, frame.MaxDistanceKm)

	if err := g.hub.Send(session.ID, EventCompanionsFound, map[string]any{
		"user_id":    frame.UserID,
		"count":      len(matches),
		"companions": matches,
	}); err != nil {
		g.logger.Warn("companions_found delivery failed",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
	}
}
