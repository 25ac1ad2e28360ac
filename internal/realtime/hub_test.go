package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// hubServer upgrades every incoming connection and registers it on the hub.
type hubServer struct {
	srv      *httptest.Server
	sessions chan *Session
}

func newHubServer(t *testing.T, hub *Hub) *hubServer {
	t.Helper()
	hs := &hubServer{sessions: make(chan *Session, 8)}
	hs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hs.sessions <- hub.Register(conn)
	}))
	t.Cleanup(hs.srv.Close)
	return hs
}

// dial connects one client and returns its connection plus the server-side
// session.
func (hs *hubServer) dial(t *testing.T) (*websocket.Conn, *Session) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(hs.srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	select {
	case session := <-hs.sessions:
		return conn, session
	case <-time.After(2 * time.Second):
		t.Fatal("server did not register the session")
		return nil, nil
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func assertNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var ev Event
	err := conn.ReadJSON(&ev)
	assert.Error(t, err, "expected no event, got %q", ev.Event)
}

func TestHub_SendUnknownSession(t *testing.T) {
	hub := NewHub(zap.NewNop())
	err := hub.Send("nope", EventSOSAlert, nil)
	assert.ErrorIs(t, err, ErrSessionUnknown)
}

func TestHub_Send(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hs := newHubServer(t, hub)
	conn, session := hs.dial(t)

	require.NoError(t, hub.Send(session.ID, EventCompanionsFound, map[string]any{"count": 2}))

	ev := readEvent(t, conn)
	assert.Equal(t, EventCompanionsFound, ev.Event)
	data, ok := ev.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["count"])
}

func TestHub_BroadcastWithExclusion(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hs := newHubServer(t, hub)
	conn1, session1 := hs.dial(t)
	conn2, _ := hs.dial(t)
	conn3, _ := hs.dial(t)

	require.Equal(t, 3, hub.Len())

	hub.Broadcast(EventCompanionOffline, map[string]string{"user_id": "user-a"}, session1.ID)

	for _, conn := range []*websocket.Conn{conn2, conn3} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventCompanionOffline, ev.Event)
	}
	assertNoEvent(t, conn1)
}

func TestHub_BroadcastToAll(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hs := newHubServer(t, hub)
	conn1, _ := hs.dial(t)
	conn2, _ := hs.dial(t)

	hub.Broadcast(EventSOSAlert, map[string]string{"alert_id": "a-1"}, "")

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventSOSAlert, ev.Event)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hs := newHubServer(t, hub)
	_, session := hs.dial(t)

	require.Equal(t, 1, hub.Len())

	hub.Unregister(session.ID)
	assert.Equal(t, 0, hub.Len())
	assert.ErrorIs(t, hub.Send(session.ID, EventSOSAlert, nil), ErrSessionUnknown)

	// Safe to call again.
	hub.Unregister(session.ID)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hs := newHubServer(t, hub)
	hs.dial(t)
	hs.dial(t)

	hub.Close()
	assert.Equal(t, 0, hub.Len())
}
