package realtime

// Websocket event names, shared with the web and mobile clients.
const (
	// Inbound (client -> server)
	EventUserPresence   = "user_presence"
	EventLocationUpdate = "location_update"
	EventFindCompanions = "find_companions"

	// Outbound (server -> client)
	EventSOSAlert          = "sos_alert"
	EventCompanionRequest  = "companion_request"
	EventCompanionJoined   = "companion_joined"
	EventCompanionOffline  = "companion_offline"
	EventCompanionsList    = "companions_list"
	EventCompanionLocation = "companion_location_update"
	EventCompanionsFound   = "companions_found"
)
