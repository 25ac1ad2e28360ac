// Package presence tracks currently connected users and answers proximity
// queries over them.
package presence

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

// Registry is the process-wide directory of online users. It is the only
// mutable shared state in the core; every access goes through the mutex.
// Records are removed by session disconnect only, never by timeout; LastSeen
// is advisory data for consumers.
type Registry struct {
	mu      sync.RWMutex
	records map[string]models.PresenceRecord // userID -> record
	logger  *zap.Logger
	now     func() time.Time
}

// NewRegistry creates an empty presence registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		records: make(map[string]models.PresenceRecord),
		logger:  logger,
		now:     time.Now,
	}
}

// Announce inserts or overwrites the record for userID and refreshes its
// last-seen timestamp. A later announcement for the same user from a
// different session overwrites the record (last-writer-wins); there is never
// more than one record per user.
func (r *Registry) Announce(userID, sessionID string, location models.Location, route *models.RouteSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[userID] = models.PresenceRecord{
		UserID:    userID,
		SessionID: sessionID,
		Location:  location,
		Route:     copyRoute(route),
		LastSeen:  r.now().UTC(),
	}
}

// UpdateLocation refreshes the location and last-seen of an online user.
// Updates for unknown users are dropped; they never resurrect a record.
// Returns whether the user was present.
func (r *Registry) UpdateLocation(userID string, location models.Location) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[userID]
	if !ok {
		r.logger.Debug("dropping location update for unknown user",
			zap.String("user_id", userID),
		)
		return false
	}

	record.Location = location
	record.LastSeen = r.now().UTC()
	r.records[userID] = record
	return true
}

// RemoveBySession deletes the record owned by sessionID, if any, and reports
// which user went offline so the caller can notify companions exactly once.
func (r *Registry) RemoveBySession(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, record := range r.records {
		if record.SessionID == sessionID {
			delete(r.records, userID)
			return userID, true
		}
	}
	return "", false
}

// Get returns a copy of one user's record.
func (r *Registry) Get(userID string) (models.PresenceRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[userID]
	if !ok {
		return models.PresenceRecord{}, false
	}
	record.Route = copyRoute(record.Route)
	return record, true
}

// Snapshot returns a point-in-time copy of all current records. Callers own
// the returned slice; mutating it does not touch the registry.
func (r *Registry) Snapshot() []models.PresenceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]models.PresenceRecord, 0, len(r.records))
	for _, record := range r.records {
		record.Route = copyRoute(record.Route)
		snapshot = append(snapshot, record)
	}
	return snapshot
}

// Len returns the number of online users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func copyRoute(route *models.RouteSummary) *models.RouteSummary {
	if route == nil {
		return nil
	}
	c := *route
	return &c
}
